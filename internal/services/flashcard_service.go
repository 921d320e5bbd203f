package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// DeckQuery filters a profile's cards.
type DeckQuery struct {
	SubjectID string
	DueOnly   bool
	Limit     int
	Offset    int
}

// FlashcardService manages the card inventory of a profile. Scheduling is
// left to ReviewService.
type FlashcardService interface {
	ListFlashcards(ctx context.Context, profileID string, q DeckQuery) ([]models.Flashcard, int, error)
	GetFlashcard(ctx context.Context, profileID, id string) (*models.Flashcard, error)
	DueCount(ctx context.Context, profileID string) (int, error)
	AddFlashcards(ctx context.Context, profileID, subjectID string, drafts []models.CardDraft) ([]models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, profileID, id string) error
}

type flashcardService struct {
	flashcardRepo repository.FlashcardRepository
	studyRepo     repository.StudyRepository
	clock         flashcard.Clock
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(flashcardRepo repository.FlashcardRepository, studyRepo repository.StudyRepository, clock flashcard.Clock) FlashcardService {
	if clock == nil {
		clock = flashcard.SystemClock
	}
	return &flashcardService{flashcardRepo: flashcardRepo, studyRepo: studyRepo, clock: clock}
}

func (s *flashcardService) ListFlashcards(ctx context.Context, profileID string, q DeckQuery) ([]models.Flashcard, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards: profile_id=%s, subject_id=%s, due_only=%t", profileID, q.SubjectID, q.DueOnly)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	filter := models.FlashcardFilter{ProfileID: profileID, SubjectID: q.SubjectID, Limit: limit, Offset: offset}
	if q.DueOnly {
		now := s.clock.Now()
		filter.DueBefore = &now
	}

	cards, err := s.flashcardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	filter.Limit, filter.Offset = 0, 0
	total, err := s.flashcardRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count flashcards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return cards, total, nil
}

func (s *flashcardService) DueCount(ctx context.Context, profileID string) (int, error) {
	log := logger.FromContext(ctx)

	now := s.clock.Now()
	count, err := s.flashcardRepo.Count(ctx, models.FlashcardFilter{ProfileID: profileID, DueBefore: &now})
	if err != nil {
		log.Error("failed to count due flashcards: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Debug("profile %s has %d due flashcards", profileID, count)
	return count, nil
}

// AddFlashcards creates cards from drafts. They are due immediately.
func (s *flashcardService) AddFlashcards(ctx context.Context, profileID, subjectID string, drafts []models.CardDraft) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding %d flashcards: profile_id=%s, subject_id=%s", len(drafts), profileID, subjectID)

	if len(drafts) == 0 {
		return nil, errors.NewValidationError("cards", "at least one card is required")
	}

	subject, err := s.studyRepo.GetSubject(ctx, subjectID, profileID)
	if err != nil {
		log.Error("failed to get subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if subject == nil {
		return nil, errors.NewNotFoundError("subject", subjectID)
	}

	// Millisecond precision matches storage.
	now := s.clock.Now().UTC().Truncate(time.Millisecond)
	cards := make([]models.Flashcard, 0, len(drafts))
	for _, d := range drafts {
		d.Front = strings.TrimSpace(d.Front)
		d.Back = strings.TrimSpace(d.Back)
		if d.Front == "" || d.Back == "" {
			return nil, errors.NewValidationError("cards", "front and back are required")
		}
		cards = append(cards, flashcard.NewCard(uuid.NewString(), profileID, subject.ID, d, now))
	}

	if err := s.flashcardRepo.InsertBatch(ctx, cards); err != nil {
		log.Error("failed to insert flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) GetFlashcard(ctx context.Context, profileID, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard: profile_id=%s, id=%s", profileID, id)

	card, err := s.flashcardRepo.Get(ctx, id, profileID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, profileID, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: profile_id=%s, id=%s", profileID, id)

	if err := s.flashcardRepo.Delete(ctx, id, profileID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("flashcard", id)
		}
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
