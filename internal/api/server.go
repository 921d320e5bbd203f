package api

import (
	"database/sql"

	"github.com/vytor/lumina/internal/services"
)

// Server exposes the study services over a JSON API.
type Server struct {
	DB               *sql.DB
	ProfileService   services.ProfileService
	StudyService     services.StudyService
	FlashcardService services.FlashcardService
	ReviewService    services.ReviewService
	StatsService     services.StatsService
	ProgressService  services.ProgressService
}
