package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lumina/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) FlashcardStats(ctx context.Context, profileID string, now time.Time) (*models.FlashcardStat, error) {
	args := m.Called(ctx, profileID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlashcardStat), args.Error(1)
}

func (m *MockStatsRepository) FlashcardSubjectStats(ctx context.Context, profileID string, now time.Time) ([]models.FlashcardSubjectStat, error) {
	args := m.Called(ctx, profileID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlashcardSubjectStat), args.Error(1)
}

func (m *MockStatsRepository) FlashcardTimeStats(ctx context.Context, profileID string) (*models.FlashcardTimeStat, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlashcardTimeStat), args.Error(1)
}
