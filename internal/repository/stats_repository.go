package repository

import (
	"context"
	"time"

	"github.com/vytor/lumina/internal/models"
)

// StatsRepository handles statistics data access
type StatsRepository interface {
	FlashcardStats(ctx context.Context, profileID string, now time.Time) (*models.FlashcardStat, error)
	FlashcardSubjectStats(ctx context.Context, profileID string, now time.Time) ([]models.FlashcardSubjectStat, error)
	FlashcardTimeStats(ctx context.Context, profileID string) (*models.FlashcardTimeStat, error)
}
