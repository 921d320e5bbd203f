package flashcard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/models"
)

// memoryDeck is both the source and the sink, like the profile store.
type memoryDeck struct {
	cards   []models.Flashcard
	saved   []models.Flashcard
	failErr error
}

func (d *memoryDeck) Cards(context.Context) ([]models.Flashcard, error) {
	out := make([]models.Flashcard, len(d.cards))
	copy(out, d.cards)
	return out, nil
}

func (d *memoryDeck) SaveCard(_ context.Context, card models.Flashcard) error {
	if d.failErr != nil {
		return d.failErr
	}
	for i := range d.cards {
		if d.cards[i].ID == card.ID {
			d.cards[i] = card
		}
	}
	d.saved = append(d.saved, card)
	return nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func card(id string, due time.Time) models.Flashcard {
	return models.Flashcard{ID: id, Front: id + "?", Back: id + "!", Ease: 2.5, NextReviewDate: due}
}

func newDeck() *memoryDeck {
	return &memoryDeck{cards: []models.Flashcard{
		card("a", t0.Add(-time.Hour)),
		card("future", t0.Add(time.Hour)),
		card("b", t0),
		card("c", t0.Add(-48*time.Hour)),
	}}
}

func TestQueue_StartSnapshotsDueCards(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})

	state, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	assert.Equal(t, flashcard.StateActive, state)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 0, q.Position())
	assert.False(t, q.Revealed())
	current, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "a", current.ID, "insertion order is kept")
}

func TestQueue_OverdueOrdering(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0}, flashcard.WithOrdering(flashcard.OrderMostOverdue))

	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	var ids []string
	for q.State() == flashcard.StateActive {
		c, _ := q.Current()
		ids = append(ids, c.ID)
		require.NoError(t, q.Reveal())
		_, err := q.Rate(context.Background(), flashcard.Good)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestQueue_EmptyWhenNothingDue(t *testing.T) {
	deck := &memoryDeck{cards: []models.Flashcard{card("future", t0.Add(time.Minute))}}
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})

	state, err := q.Start(context.Background(), deck)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateEmpty, state)

	assert.ErrorIs(t, q.Reveal(), flashcard.ErrInvalidState)
	_, err = q.Rate(context.Background(), flashcard.Good)
	assert.ErrorIs(t, err, flashcard.ErrInvalidState)
	_, ok := q.Current()
	assert.False(t, ok)
}

func TestQueue_RevealIsIdempotent(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	require.NoError(t, q.Reveal())
	require.NoError(t, q.Reveal())

	assert.True(t, q.Revealed())
	assert.Equal(t, 0, q.Position())
	assert.Equal(t, flashcard.StateActive, q.State())
	assert.Empty(t, deck.saved)
}

func TestQueue_RateRequiresReveal(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	_, err = q.Rate(context.Background(), flashcard.Good)

	assert.ErrorIs(t, err, flashcard.ErrInvalidState)
	assert.Equal(t, 0, q.Position())
	assert.Empty(t, deck.saved)
}

func TestQueue_RateAdvancesAndPersists(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	require.NoError(t, q.Reveal())
	updated, err := q.Rate(context.Background(), flashcard.Good)
	require.NoError(t, err)

	assert.Equal(t, "a", updated.ID)
	assert.Equal(t, 1, updated.Interval)
	require.Len(t, deck.saved, 1)
	assert.Equal(t, updated, deck.saved[0])
	assert.Equal(t, 1, q.Position())
	assert.False(t, q.Revealed(), "next card starts hidden")
	assert.Equal(t, 1, q.Reviewed())
}

func TestQueue_RejectsInvalidRating(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)
	require.NoError(t, q.Reveal())

	_, err = q.Rate(context.Background(), flashcard.Rating(9))

	assert.ErrorIs(t, err, flashcard.ErrInvalidArgument)
	assert.Equal(t, 0, q.Position())
	assert.True(t, q.Revealed())
}

func TestQueue_PersistenceFailureDoesNotAdvance(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)
	require.NoError(t, q.Reveal())

	diskFull := errors.New("disk full")
	deck.failErr = diskFull
	_, err = q.Rate(context.Background(), flashcard.Easy)

	assert.ErrorIs(t, err, flashcard.ErrPersistence)
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, 0, q.Position())
	assert.True(t, q.Revealed())
	assert.Equal(t, 0, q.Reviewed())
	current, _ := q.Current()
	assert.Equal(t, 0, current.Repetitions, "queue keeps the unrated card")

	// Retry once the sink recovers.
	deck.failErr = nil
	updated, err := q.Rate(context.Background(), flashcard.Easy)
	require.NoError(t, err)
	assert.Equal(t, "a", updated.ID)
	assert.Equal(t, 1, q.Position())
}

func TestQueue_SnapshotIsolation(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	deck.cards = append(deck.cards, card("late", t0.Add(-time.Minute)))

	assert.Equal(t, 3, q.Len())
	for q.State() == flashcard.StateActive {
		c, _ := q.Current()
		assert.NotEqual(t, "late", c.ID)
		require.NoError(t, q.Reveal())
		_, err := q.Rate(context.Background(), flashcard.Good)
		require.NoError(t, err)
	}
}

func TestQueue_AgainIsNotRequeued(t *testing.T) {
	deck := &memoryDeck{cards: []models.Flashcard{card("x", t0), card("y", t0)}}
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	require.NoError(t, q.Reveal())
	_, err = q.Rate(context.Background(), flashcard.Again)
	require.NoError(t, err)
	require.NoError(t, q.Reveal())
	_, err = q.Rate(context.Background(), flashcard.Good)
	require.NoError(t, err)

	assert.Equal(t, flashcard.StateComplete, q.State())
	assert.Equal(t, 2, q.Reviewed())

	// The failed card resurfaces on the next Start.
	state, err := q.Start(context.Background(), deck)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateActive, state)
	assert.Equal(t, 1, q.Len())
	c, _ := q.Current()
	assert.Equal(t, "x", c.ID)
}

func TestQueue_CompleteIsTerminal(t *testing.T) {
	deck := &memoryDeck{cards: []models.Flashcard{card("only", t0)}}
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	require.NoError(t, q.Reveal())
	_, err = q.Rate(context.Background(), flashcard.Hard)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateComplete, q.State())

	assert.ErrorIs(t, q.Reveal(), flashcard.ErrInvalidState)
	_, err = q.Rate(context.Background(), flashcard.Good)
	assert.ErrorIs(t, err, flashcard.ErrInvalidState)
	assert.Len(t, deck.saved, 1)
}

func TestQueue_SkipMovesOnWithoutSaving(t *testing.T) {
	deck := newDeck()
	q := flashcard.NewQueue(deck, &fixedClock{now: t0})
	_, err := q.Start(context.Background(), deck)
	require.NoError(t, err)

	require.NoError(t, q.Reveal())
	skipped, err := q.Skip()
	require.NoError(t, err)
	assert.Equal(t, "a", skipped.ID)
	assert.Equal(t, 1, q.Position())
	assert.False(t, q.Revealed())
	assert.Zero(t, q.Reviewed())
	assert.Empty(t, deck.saved)

	_, err = q.Skip()
	require.NoError(t, err)
	_, err = q.Skip()
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateComplete, q.State())

	_, err = q.Skip()
	assert.ErrorIs(t, err, flashcard.ErrInvalidState)
}

func TestParseOrdering(t *testing.T) {
	o, err := flashcard.ParseOrdering("overdue")
	require.NoError(t, err)
	assert.Equal(t, flashcard.OrderMostOverdue, o)

	o, err = flashcard.ParseOrdering("")
	require.NoError(t, err)
	assert.Equal(t, flashcard.OrderInsertion, o)

	_, err = flashcard.ParseOrdering("random")
	assert.ErrorIs(t, err, flashcard.ErrInvalidArgument)
}
