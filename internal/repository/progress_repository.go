package repository

import (
	"context"

	"github.com/vytor/lumina/internal/models"
)

// ProgressRepository handles achievements and pets. Session rewards are
// applied by StudyRepository.InsertSession.
type ProgressRepository interface {
	ListAchievements(ctx context.Context, profileID string) ([]models.UnlockedAchievement, error)
	GetPet(ctx context.Context, profileID string) (*models.Pet, error)
	CreatePet(ctx context.Context, pet models.Pet) error
}
