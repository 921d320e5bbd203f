package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/generator"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/testutil/mocks"
	"github.com/vytor/lumina/internal/worker"
)

type stubGenerator struct {
	drafts []models.CardDraft
	err    error
	got    generator.Request
}

func (g *stubGenerator) Flashcards(_ context.Context, req generator.Request) ([]models.CardDraft, error) {
	g.got = req
	return g.drafts, g.err
}

func TestGenerateFlashcardsJob_StoresNewCards(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	gen := &stubGenerator{drafts: []models.CardDraft{
		{Front: "Mitochondria", Back: "Powerhouse of the cell"},
		{Front: "Ribosome", Back: "Protein synthesis"},
		{Front: "Nucleus", Back: "Holds DNA"},
	}}
	repo := new(mocks.MockFlashcardRepository)
	repo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(cards []models.Flashcard) bool {
		if len(cards) != 3 {
			return false
		}
		for _, c := range cards {
			if c.SessionID != "sess1" || c.SubjectID != "s1" || c.ProfileID != "p1" ||
				c.Ease != flashcard.InitialEase || c.Interval != 0 || !c.NextReviewDate.Equal(now) || c.ID == "" {
				return false
			}
		}
		return true
	})).Return(nil)

	job := &worker.GenerateFlashcardsJob{
		Generator: gen,
		Cards:     repo,
		Profile:   models.Profile{ID: "p1", Language: models.LanguageHU},
		Subject:   models.Subject{ID: "s1", Name: "Biology"},
		Session:   models.StudySession{ID: "sess1", Notes: "cell organelles"},
		Clock:     flashcard.ClockFunc(func() time.Time { return now }),
	}

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "generate_flashcards", job.Name())
	assert.Equal(t, generator.Request{Subject: "Biology", Notes: "cell organelles", Language: models.LanguageHU}, gen.got)
	repo.AssertExpectations(t)
}

func TestGenerateFlashcardsJob_GeneratorFailure(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	job := &worker.GenerateFlashcardsJob{
		Generator: &stubGenerator{err: errors.New("rate limited")},
		Cards:     repo,
	}

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}
