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
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/services"
	"github.com/vytor/lumina/internal/testutil/mocks"
)

func TestStatsService_PassesClockToRepository(t *testing.T) {
	now := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	repo := new(mocks.MockStatsRepository)
	repo.On("FlashcardStats", mock.Anything, "p1", now).Return(&models.FlashcardStat{TotalCards: 4, CardsDue: 2}, nil)
	repo.On("FlashcardSubjectStats", mock.Anything, "p1", now).Return([]models.FlashcardSubjectStat{{SubjectID: "s1", TotalCards: 4}}, nil)

	svc := services.NewStatsService(repo, newTestClock(now))

	stats, err := svc.GetFlashcardStats(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CardsDue)

	subjects, err := svc.GetFlashcardSubjectStats(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
	repo.AssertExpectations(t)
}

func TestStatsService_RepositoryErrorIsInternal(t *testing.T) {
	repo := new(mocks.MockStatsRepository)
	repo.On("FlashcardTimeStats", mock.Anything, "p1").Return(nil, stderrors.New("disk I/O error"))

	svc := services.NewStatsService(repo, newTestClock(time.Now()))
	_, err := svc.GetFlashcardTimeStats(context.Background(), "p1")
	requireAppError(t, err, apperrors.ErrCodeInternal, 500)
}
