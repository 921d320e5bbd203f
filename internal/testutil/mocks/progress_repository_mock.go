package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lumina/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListAchievements(ctx context.Context, profileID string) ([]models.UnlockedAchievement, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UnlockedAchievement), args.Error(1)
}

func (m *MockProgressRepository) GetPet(ctx context.Context, profileID string) (*models.Pet, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockProgressRepository) CreatePet(ctx context.Context, pet models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}
