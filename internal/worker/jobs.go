package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/generator"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

// GenerateFlashcardsJob asks the generator for drafts from a study session's
// notes and stores them as new, immediately due cards.
type GenerateFlashcardsJob struct {
	Generator CardGenerator
	Cards     repository.FlashcardRepository
	Profile   models.Profile
	Subject   models.Subject
	Session   models.StudySession
	Clock     flashcard.Clock
}

func (j *GenerateFlashcardsJob) Name() string { return "generate_flashcards" }

func (j *GenerateFlashcardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": j.Profile.ID,
		"subject_id": j.Subject.ID,
		"session_id": j.Session.ID,
	})
	log.Info("generating flashcards for study session")

	drafts, err := j.Generator.Flashcards(ctx, generator.Request{
		Subject:  j.Subject.Name,
		Notes:    j.Session.Notes,
		Language: j.Profile.Language,
	})
	if err != nil {
		log.Error("card generation failed: %v", err)
		return fmt.Errorf("generate flashcards: %w", err)
	}

	clock := j.Clock
	if clock == nil {
		clock = flashcard.SystemClock
	}
	now := clock.Now().UTC().Truncate(time.Millisecond)

	cards := make([]models.Flashcard, 0, len(drafts))
	for _, d := range drafts {
		c := flashcard.NewCard(uuid.NewString(), j.Profile.ID, j.Subject.ID, d, now)
		c.SessionID = j.Session.ID
		cards = append(cards, c)
	}

	if err := j.Cards.InsertBatch(ctx, cards); err != nil {
		log.Error("failed to store generated cards: %v", err)
		return fmt.Errorf("store flashcards: %w", err)
	}
	log.Info("stored %d generated flashcards", len(cards))
	return nil
}
