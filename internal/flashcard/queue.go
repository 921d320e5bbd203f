package flashcard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vytor/lumina/internal/models"
)

// State is the lifecycle of a review queue.
type State int

const (
	StateEmpty State = iota
	StateActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := StateEmpty; st <= StateComplete; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("%w: state %q", ErrInvalidArgument, text)
}

// CardSource supplies every card a profile owns. It is read once per Start.
type CardSource interface {
	Cards(ctx context.Context) ([]models.Flashcard, error)
}

// CardSink durably stores one rescheduled card.
type CardSink interface {
	SaveCard(ctx context.Context, card models.Flashcard) error
}

type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Ordering controls how due cards are arranged when a queue starts.
type Ordering int

const (
	// OrderInsertion keeps the order in which the source enumerates cards.
	OrderInsertion Ordering = iota
	// OrderMostOverdue puts the card that has waited longest first.
	OrderMostOverdue
)

func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "insertion":
		return OrderInsertion, nil
	case "overdue":
		return OrderMostOverdue, nil
	default:
		return OrderInsertion, fmt.Errorf("%w: ordering %q", ErrInvalidArgument, s)
	}
}

type Option func(*Queue)

func WithOrdering(o Ordering) Option {
	return func(q *Queue) {
		q.ordering = o
	}
}

// Queue walks a fixed snapshot of due cards. A card rated Again during a
// session is not shown again until the next Start.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	sink     CardSink
	clock    Clock
	ordering Ordering

	cards    []models.Flashcard
	index    int
	revealed bool
	reviewed int
	state    State
}

// NewQueue returns a queue in the Empty state.
func NewQueue(sink CardSink, clock Clock, opts ...Option) *Queue {
	if clock == nil {
		clock = SystemClock
	}
	q := &Queue{sink: sink, clock: clock}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start loads all cards from src and snapshots those due now. It returns
// StateEmpty, without error, when nothing is due.
func (q *Queue) Start(ctx context.Context, src CardSource) (State, error) {
	now := q.clock.Now()
	if err := checkNow(now); err != nil {
		return q.state, err
	}

	all, err := src.Cards(ctx)
	if err != nil {
		return q.state, fmt.Errorf("load cards: %w", err)
	}

	due := make([]models.Flashcard, 0, len(all))
	for _, c := range all {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	if q.ordering == OrderMostOverdue {
		sort.SliceStable(due, func(i, j int) bool {
			return due[i].NextReviewDate.Before(due[j].NextReviewDate)
		})
	}

	q.cards = due
	q.index = 0
	q.revealed = false
	q.reviewed = 0
	if len(due) == 0 {
		q.state = StateEmpty
	} else {
		q.state = StateActive
	}
	return q.state, nil
}

// Reveal shows the back of the current card. Calling it again is a no-op.
func (q *Queue) Reveal() error {
	if q.state != StateActive {
		return fmt.Errorf("%w: cannot reveal in %s state", ErrInvalidState, q.state)
	}
	q.revealed = true
	return nil
}

// Rate reschedules the current card and stores it through the sink. The
// queue only advances once the sink has accepted the card; on a sink error
// the same card stays current and revealed so the caller may retry.
func (q *Queue) Rate(ctx context.Context, rating Rating) (models.Flashcard, error) {
	if q.state != StateActive {
		return models.Flashcard{}, fmt.Errorf("%w: cannot rate in %s state", ErrInvalidState, q.state)
	}
	if !q.revealed {
		return models.Flashcard{}, fmt.Errorf("%w: card must be revealed before rating", ErrInvalidState)
	}

	updated, err := Rate(q.cards[q.index], rating, q.clock.Now())
	if err != nil {
		return models.Flashcard{}, err
	}
	if err := q.sink.SaveCard(ctx, updated); err != nil {
		return models.Flashcard{}, fmt.Errorf("%w: save card %s: %w", ErrPersistence, updated.ID, err)
	}

	q.cards[q.index] = updated
	q.reviewed++
	q.advance()
	return updated, nil
}

// Skip moves past the current card without rating it. Callers use it for
// cards that can no longer be stored, such as ones deleted mid-session.
func (q *Queue) Skip() (models.Flashcard, error) {
	if q.state != StateActive {
		return models.Flashcard{}, fmt.Errorf("%w: cannot skip in %s state", ErrInvalidState, q.state)
	}
	skipped := q.cards[q.index]
	q.advance()
	return skipped, nil
}

func (q *Queue) advance() {
	q.revealed = false
	if q.index == len(q.cards)-1 {
		q.state = StateComplete
		return
	}
	q.index++
}

func (q *Queue) State() State { return q.state }

func (q *Queue) Revealed() bool { return q.revealed }

// Current returns the card under review while the queue is active.
func (q *Queue) Current() (models.Flashcard, bool) {
	if q.state != StateActive {
		return models.Flashcard{}, false
	}
	return q.cards[q.index], true
}

// Position is the 0-based index of the current card.
func (q *Queue) Position() int { return q.index }

func (q *Queue) Len() int { return len(q.cards) }

// Reviewed counts ratings that were stored successfully.
func (q *Queue) Reviewed() int { return q.reviewed }
