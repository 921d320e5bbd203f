package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lumina/internal/models"
)

// MockStudyRepository is a mock implementation of repository.StudyRepository
type MockStudyRepository struct {
	mock.Mock
}

func (m *MockStudyRepository) CreateSubject(ctx context.Context, s models.Subject) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudyRepository) GetSubject(ctx context.Context, id, profileID string) (*models.Subject, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockStudyRepository) ListSubjects(ctx context.Context, profileID string) ([]models.Subject, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockStudyRepository) InsertSession(ctx context.Context, s models.StudySession) (*models.SessionOutcome, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionOutcome), args.Error(1)
}

func (m *MockStudyRepository) ListSessions(ctx context.Context, profileID string, limit int) ([]models.StudySession, error) {
	args := m.Called(ctx, profileID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudySession), args.Error(1)
}
