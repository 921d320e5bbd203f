package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
	"github.com/vytor/lumina/internal/services"
	"github.com/vytor/lumina/internal/testutil/mocks"
)

var reviewNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func dueCard(id string, due time.Time) models.Flashcard {
	c := flashcard.NewCard(id, "p1", "s1", models.CardDraft{Front: "front " + id, Back: "back " + id}, due)
	return c
}

func newReviewFixture(t *testing.T, cards ...models.Flashcard) (services.ReviewService, *mocks.MockFlashcardRepository, *testClock) {
	t.Helper()
	repo := new(mocks.MockFlashcardRepository)
	repo.On("List", mock.Anything, models.FlashcardFilter{ProfileID: "p1"}).Return(cards, nil)
	clock := newTestClock(reviewNow)
	svc := services.NewReviewService(repo, clock, services.ReviewOptions{TTL: 30 * time.Minute})
	return svc, repo, clock
}

func TestReviewService_StartWithNothingDue(t *testing.T) {
	svc, repo, _ := newReviewFixture(t, dueCard("later", reviewNow.Add(time.Hour)))

	v, err := svc.StartReview(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateEmpty, v.State)
	assert.Empty(t, v.SessionID)
	assert.Nil(t, v.Card)
	assert.Zero(t, svc.ActiveSessions())
	repo.AssertExpectations(t)
}

func TestReviewService_FullSession(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newReviewFixture(t, dueCard("a", reviewNow.Add(-time.Hour)), dueCard("b", reviewNow))
	repo.On("Update", mock.Anything, mock.AnythingOfType("models.Flashcard")).Return(nil)
	repo.On("InsertReviewHistory", mock.Anything, mock.AnythingOfType("models.ReviewHistory")).Return(nil)

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	require.NotEmpty(t, v.SessionID)
	assert.Equal(t, flashcard.StateActive, v.State)
	assert.Equal(t, 2, v.Total)
	require.NotNil(t, v.Card)
	assert.Equal(t, "front a", v.Card.Front)
	assert.Empty(t, v.Card.Back, "back is hidden before reveal")

	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, 3)
	requireAppError(t, err, apperrors.ErrCodeInvalidState, 409)

	v, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "back a", v.Card.Back)

	v, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, 1, v.Reviewed)
	assert.False(t, v.Revealed)
	require.NotNil(t, v.LastRated)
	assert.Equal(t, 1, v.LastRated.Interval)
	assert.True(t, reviewNow.Add(24*time.Hour).Equal(v.LastRated.NextReviewDate))

	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	v, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Again, 9)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateComplete, v.State)
	assert.Nil(t, v.Card)

	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	requireAppError(t, err, apperrors.ErrCodeInvalidState, 409)

	repo.AssertNumberOfCalls(t, "Update", 2)
	repo.AssertCalled(t, "InsertReviewHistory", mock.Anything, mock.MatchedBy(func(h models.ReviewHistory) bool {
		return h.FlashcardID == "b" && h.Rating == 1 && h.Interval == 0 && h.TimeSeconds == 9
	}))
}

func TestReviewService_PersistenceFailureKeepsCard(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newReviewFixture(t, dueCard("a", reviewNow))
	repo.On("Update", mock.Anything, mock.Anything).Return(stderrors.New("disk full")).Once()

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)

	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Easy, 2)
	requireAppError(t, err, apperrors.ErrCodePersistenceFailure, 503)
	repo.AssertNotCalled(t, "InsertReviewHistory", mock.Anything, mock.Anything)

	v, err = svc.GetReview(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateActive, v.State)
	assert.Equal(t, 0, v.Position)
	assert.True(t, v.Revealed)
	assert.Equal(t, "back a", v.Card.Back)

	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(nil)
	v, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Easy, 2)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateComplete, v.State)
}

func TestReviewService_DeletedCardIsSkipped(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newReviewFixture(t, dueCard("a", reviewNow), dueCard("b", reviewNow))
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool { return c.ID == "a" })).
		Return(repository.ErrNotFound)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool { return c.ID == "b" })).
		Return(nil)
	repo.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(nil)

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)

	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, 2)
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)

	v, err = svc.GetReview(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateActive, v.State)
	assert.Equal(t, 1, v.Position)
	assert.Zero(t, v.Reviewed)
	assert.Equal(t, "front b", v.Card.Front)

	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	v, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, 2)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateComplete, v.State)
	assert.Equal(t, 1, v.Reviewed)
}

func TestReviewService_CorruptCardIsSkipped(t *testing.T) {
	ctx := context.Background()
	corrupt := dueCard("bad", reviewNow)
	corrupt.Ease = 0.5
	svc, repo, _ := newReviewFixture(t, corrupt, dueCard("b", reviewNow))

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)

	// Not revealed yet: the state error wins and the card stays.
	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, 1)
	requireAppError(t, err, apperrors.ErrCodeInvalidState, 409)

	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, 1)
	requireAppError(t, err, apperrors.ErrCodeInvalidArgument, 400)

	v, err = svc.GetReview(ctx, "p1", v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, "front b", v.Card.Front)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewService_HistoryFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newReviewFixture(t, dueCard("a", reviewNow))
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(stderrors.New("locked"))

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)

	v, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Hard, 1)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateComplete, v.State)
}

func TestReviewService_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReviewFixture(t, dueCard("a", reviewNow))

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	_, err = svc.Reveal(ctx, "p1", v.SessionID)
	require.NoError(t, err)

	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Rating(9), 1)
	requireAppError(t, err, apperrors.ErrCodeInvalidArgument, 400)

	_, err = svc.Rate(ctx, "p1", v.SessionID, flashcard.Good, -1)
	requireAppError(t, err, apperrors.ErrCodeValidation, 400)
}

func TestReviewService_SessionsAreScopedToProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReviewFixture(t, dueCard("a", reviewNow))

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)

	_, err = svc.GetReview(ctx, "p2", v.SessionID)
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)
	_, err = svc.GetReview(ctx, "p1", "missing")
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)
}

func TestReviewService_CloseDiscardsQueue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReviewFixture(t, dueCard("a", reviewNow))

	v, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, "p1", v.SessionID))
	assert.Zero(t, svc.ActiveSessions())

	_, err = svc.GetReview(ctx, "p1", v.SessionID)
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)
}

func TestReviewService_SweepDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newReviewFixture(t, dueCard("a", reviewNow))

	idle, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)
	clock.Advance(20 * time.Minute)
	busy, err := svc.StartReview(ctx, "p1")
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = svc.GetReview(ctx, "p1", busy.SessionID)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Sweep(ctx))
	assert.Equal(t, 1, svc.ActiveSessions())
	_, err = svc.GetReview(ctx, "p1", idle.SessionID)
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)
}

func TestReviewService_SourceFailure(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, stderrors.New("db down"))
	svc := services.NewReviewService(repo, newTestClock(reviewNow), services.ReviewOptions{})

	_, err := svc.StartReview(context.Background(), "p1")
	requireAppError(t, err, apperrors.ErrCodeInternal, 500)
}
