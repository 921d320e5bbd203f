package repository

import (
	"context"

	"github.com/vytor/lumina/internal/models"
)

// StudyRepository handles subjects and study sessions
type StudyRepository interface {
	CreateSubject(ctx context.Context, s models.Subject) error
	GetSubject(ctx context.Context, id, profileID string) (*models.Subject, error)
	ListSubjects(ctx context.Context, profileID string) ([]models.Subject, error)
	// InsertSession records the session, credits the subject totals and the
	// profile rewards, unlocks achievements and grows the pet in one
	// transaction.
	InsertSession(ctx context.Context, s models.StudySession) (*models.SessionOutcome, error)
	ListSessions(ctx context.Context, profileID string, limit int) ([]models.StudySession, error)
}
