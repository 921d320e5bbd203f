package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/jobs"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

const (
	xpPerMinute    = 10
	coinsPerMinute = 1

	maxSessionMinutes = 24 * 60
)

// SessionInput is a finished focus block reported by the client.
type SessionInput struct {
	SubjectID       string
	DurationMinutes int
	Notes           string
	Mood            string
}

// SessionResult is the stored session, the progress it earned and whether
// card generation was queued.
type SessionResult struct {
	Session          models.StudySession   `json:"session"`
	Progress         models.SessionOutcome `json:"progress"`
	GenerationQueued bool                  `json:"generation_queued"`
}

// StudyService handles subjects and study sessions
type StudyService interface {
	CreateSubject(ctx context.Context, profileID, name string) (*models.Subject, error)
	ListSubjects(ctx context.Context, profileID string) ([]models.Subject, error)
	SubmitSession(ctx context.Context, profileID string, in SessionInput) (*SessionResult, error)
}

type studyService struct {
	studyRepo   repository.StudyRepository
	profileRepo repository.ProfileRepository
	jobQueue    jobs.JobQueue
	clock       flashcard.Clock
}

// NewStudyService creates a new StudyService. jobQueue may be nil when no
// card generator is configured.
func NewStudyService(studyRepo repository.StudyRepository, profileRepo repository.ProfileRepository, jobQueue jobs.JobQueue, clock flashcard.Clock) StudyService {
	if clock == nil {
		clock = flashcard.SystemClock
	}
	return &studyService{
		studyRepo:   studyRepo,
		profileRepo: profileRepo,
		jobQueue:    jobQueue,
		clock:       clock,
	}
}

func (s *studyService) CreateSubject(ctx context.Context, profileID, name string) (*models.Subject, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating subject: profile_id=%s, name=%s", profileID, name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	subject := models.Subject{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Name:      name,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.studyRepo.CreateSubject(ctx, subject); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, errors.NewConflictError("subject already exists: " + name)
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NewNotFoundError("profile", profileID)
		}
		log.Error("failed to create subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &subject, nil
}

func (s *studyService) ListSubjects(ctx context.Context, profileID string) ([]models.Subject, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing subjects: profile_id=%s", profileID)

	subjects, err := s.studyRepo.ListSubjects(ctx, profileID)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return subjects, nil
}

// SubmitSession records a study session, credits xp and coins, and queues
// flashcard generation from the notes when a generator is available.
func (s *studyService) SubmitSession(ctx context.Context, profileID string, in SessionInput) (*SessionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting study session: profile_id=%s, subject_id=%s, minutes=%d", profileID, in.SubjectID, in.DurationMinutes)

	if in.DurationMinutes < 1 || in.DurationMinutes > maxSessionMinutes {
		return nil, errors.NewValidationError("duration_minutes", "must be between 1 and 1440")
	}

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	subject, err := s.studyRepo.GetSubject(ctx, in.SubjectID, profileID)
	if err != nil {
		log.Error("failed to get subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if subject == nil {
		return nil, errors.NewNotFoundError("subject", in.SubjectID)
	}

	session := models.StudySession{
		ID:              uuid.NewString(),
		ProfileID:       profileID,
		SubjectID:       subject.ID,
		DurationMinutes: in.DurationMinutes,
		Notes:           strings.TrimSpace(in.Notes),
		Mood:            strings.TrimSpace(in.Mood),
		XPEarned:        in.DurationMinutes * xpPerMinute,
		CoinsEarned:     in.DurationMinutes * coinsPerMinute,
		CreatedAt:       s.clock.Now().UTC(),
	}
	outcome, err := s.studyRepo.InsertSession(ctx, session)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("subject", in.SubjectID)
		}
		log.Error("failed to insert study session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(outcome.Unlocked) > 0 {
		log.Info("achievements unlocked: %v (+%d xp)", outcome.Unlocked, outcome.BonusXP)
	}

	result := &SessionResult{Session: session, Progress: *outcome}
	if s.jobQueue == nil || session.Notes == "" {
		return result, nil
	}

	// The session is already stored, so a full queue only costs the cards.
	if err := s.jobQueue.EnqueueCardGeneration(jobs.CardGeneration{
		Profile: *profile,
		Subject: *subject,
		Session: session,
	}); err != nil {
		log.Warn("failed to enqueue card generation for session %s: %v", session.ID, err)
		return result, nil
	}
	result.GenerationQueued = true
	return result, nil
}
