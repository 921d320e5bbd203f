package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

const defaultReviewTTL = time.Hour

// ReviewCard is the card under review as shown to the client. Back stays
// empty until the card is revealed.
type ReviewCard struct {
	ID        string `json:"id"`
	SubjectID string `json:"subject_id"`
	Front     string `json:"front"`
	Back      string `json:"back,omitempty"`
}

// ReviewView is a snapshot of a review session. SessionID is empty when
// nothing was due and no session was kept.
type ReviewView struct {
	SessionID string            `json:"session_id,omitempty"`
	State     flashcard.State   `json:"state"`
	Position  int               `json:"position"`
	Total     int               `json:"total"`
	Reviewed  int               `json:"reviewed"`
	Revealed  bool              `json:"revealed"`
	Card      *ReviewCard       `json:"card,omitempty"`
	LastRated *models.Flashcard `json:"last_rated,omitempty"`
}

// ReviewService hosts review queues between HTTP requests.
type ReviewService interface {
	StartReview(ctx context.Context, profileID string) (*ReviewView, error)
	GetReview(ctx context.Context, profileID, sessionID string) (*ReviewView, error)
	Reveal(ctx context.Context, profileID, sessionID string) (*ReviewView, error)
	Rate(ctx context.Context, profileID, sessionID string, rating flashcard.Rating, timeSeconds float64) (*ReviewView, error)
	Close(ctx context.Context, profileID, sessionID string) error
	// Sweep drops sessions idle for longer than the TTL and reports how many.
	Sweep(ctx context.Context) int
	RunSweeper(ctx context.Context, every time.Duration)
	ActiveSessions() int
}

type ReviewOptions struct {
	Ordering flashcard.Ordering
	TTL      time.Duration
}

type reviewSession struct {
	mu        sync.Mutex
	profileID string
	queue     *flashcard.Queue
}

type reviewService struct {
	flashcardRepo repository.FlashcardRepository
	clock         flashcard.Clock
	opts          ReviewOptions

	mu       sync.Mutex
	sessions map[string]*reviewSession
	lastUsed map[string]time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(flashcardRepo repository.FlashcardRepository, clock flashcard.Clock, opts ReviewOptions) ReviewService {
	if clock == nil {
		clock = flashcard.SystemClock
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultReviewTTL
	}
	return &reviewService{
		flashcardRepo: flashcardRepo,
		clock:         clock,
		opts:          opts,
		sessions:      make(map[string]*reviewSession),
		lastUsed:      make(map[string]time.Time),
	}
}

// profileDeck is both the card source and the card sink of one profile.
type profileDeck struct {
	repo      repository.FlashcardRepository
	profileID string
}

func (d profileDeck) Cards(ctx context.Context) ([]models.Flashcard, error) {
	return d.repo.List(ctx, models.FlashcardFilter{ProfileID: d.profileID})
}

func (d profileDeck) SaveCard(ctx context.Context, card models.Flashcard) error {
	return d.repo.Update(ctx, card)
}

func (s *reviewService) StartReview(ctx context.Context, profileID string) (*ReviewView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting review: profile_id=%s", profileID)

	deck := profileDeck{repo: s.flashcardRepo, profileID: profileID}
	queue := flashcard.NewQueue(deck, s.clock, flashcard.WithOrdering(s.opts.Ordering))
	state, err := queue.Start(ctx, deck)
	if err != nil {
		log.Error("failed to start review queue: %v", err)
		return nil, errors.FromEngine(err)
	}
	if state == flashcard.StateEmpty {
		log.Debug("nothing due for profile %s", profileID)
		return &ReviewView{State: state}, nil
	}

	id := uuid.NewString()
	sess := &reviewSession{profileID: profileID, queue: queue}

	s.mu.Lock()
	s.sessions[id] = sess
	s.lastUsed[id] = s.clock.Now()
	s.mu.Unlock()

	log.Info("review session %s started with %d due cards", id, queue.Len())
	return view(id, sess.queue), nil
}

func (s *reviewService) GetReview(ctx context.Context, profileID, sessionID string) (*ReviewView, error) {
	sess, err := s.lookup(profileID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return view(sessionID, sess.queue), nil
}

func (s *reviewService) Reveal(ctx context.Context, profileID, sessionID string) (*ReviewView, error) {
	log := logger.FromContext(ctx)

	sess, err := s.lookup(profileID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.queue.Reveal(); err != nil {
		log.Debug("reveal rejected for session %s: %v", sessionID, err)
		return nil, errors.FromEngine(err)
	}
	return view(sessionID, sess.queue), nil
}

// Rate grades the current card. The session only moves on once the card is
// stored; the review history row that follows is best effort.
func (s *reviewService) Rate(ctx context.Context, profileID, sessionID string, rating flashcard.Rating, timeSeconds float64) (*ReviewView, error) {
	log := logger.FromContext(ctx)
	log.Debug("rating card: session_id=%s, rating=%d", sessionID, int(rating))

	if timeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	sess, err := s.lookup(profileID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	current, _ := sess.queue.Current()
	rated, err := sess.queue.Rate(ctx, rating)
	if err != nil {
		log.Warn("rating rejected for session %s: %v", sessionID, err)
		return nil, s.dropUnrateable(ctx, sess.queue, current, err)
	}
	log.Debug("card %s rescheduled: interval=%d, reps=%d, ease=%.2f", rated.ID, rated.Interval, rated.Repetitions, rated.Ease)

	if err := s.flashcardRepo.InsertReviewHistory(ctx, models.ReviewHistory{
		FlashcardID: rated.ID,
		Rating:      int(rating),
		Interval:    rated.Interval,
		Ease:        rated.Ease,
		TimeSeconds: timeSeconds,
		ReviewedAt:  s.clock.Now(),
	}); err != nil {
		// Don't fail the review if history storage fails
		log.Warn("failed to store review history: %v", err)
	}

	v := view(sessionID, sess.queue)
	v.LastRated = &rated
	if v.State == flashcard.StateComplete {
		log.Info("review session %s complete: %d cards reviewed", sessionID, v.Reviewed)
	}
	return v, nil
}

// dropUnrateable skips the current card when retrying the rating can never
// succeed: the card was deleted, or its stored schedule is corrupt. Other
// errors leave the queue untouched.
func (s *reviewService) dropUnrateable(ctx context.Context, queue *flashcard.Queue, current models.Flashcard, err error) error {
	log := logger.FromContext(ctx)
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		if _, skipErr := queue.Skip(); skipErr == nil {
			log.Warn("card %s no longer exists, skipped", current.ID)
		}
		return errors.NewNotFoundError("flashcard", current.ID)
	case stderrors.Is(err, flashcard.ErrInvalidArgument) && flashcard.CheckInvariants(current) != nil:
		if _, skipErr := queue.Skip(); skipErr == nil {
			log.Warn("card %s has an invalid schedule, skipped: %v", current.ID, err)
		}
		return errors.FromEngine(err)
	default:
		return errors.FromEngine(err)
	}
}

func (s *reviewService) Close(ctx context.Context, profileID, sessionID string) error {
	if _, err := s.lookup(profileID, sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	delete(s.lastUsed, sessionID)
	s.mu.Unlock()

	logger.FromContext(ctx).Debug("review session %s closed", sessionID)
	return nil
}

func (s *reviewService) Sweep(ctx context.Context) int {
	cutoff := s.clock.Now().Add(-s.opts.TTL)

	s.mu.Lock()
	swept := 0
	for id, used := range s.lastUsed {
		if used.Before(cutoff) {
			delete(s.sessions, id)
			delete(s.lastUsed, id)
			swept++
		}
	}
	s.mu.Unlock()

	if swept > 0 {
		logger.FromContext(ctx).Info("swept %d idle review sessions", swept)
	}
	return swept
}

func (s *reviewService) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *reviewService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// lookup finds a session owned by profileID and marks it as used.
func (s *reviewService) lookup(profileID, sessionID string) (*reviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.profileID != profileID {
		return nil, errors.NewNotFoundError("review session", sessionID)
	}
	s.lastUsed[sessionID] = s.clock.Now()
	return sess, nil
}

func view(id string, q *flashcard.Queue) *ReviewView {
	v := &ReviewView{
		SessionID: id,
		State:     q.State(),
		Position:  q.Position(),
		Total:     q.Len(),
		Reviewed:  q.Reviewed(),
		Revealed:  q.Revealed(),
	}
	if card, ok := q.Current(); ok {
		v.Card = &ReviewCard{ID: card.ID, SubjectID: card.SubjectID, Front: card.Front}
		if q.Revealed() {
			v.Card.Back = card.Back
		}
	}
	return v
}
