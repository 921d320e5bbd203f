package worker

import (
	"context"

	"github.com/vytor/lumina/internal/generator"
	"github.com/vytor/lumina/internal/models"
)

// CardGenerator turns study notes into drafts. *generator.Generator
// satisfies it; tests substitute a fake.
type CardGenerator interface {
	Flashcards(ctx context.Context, req generator.Request) ([]models.CardDraft, error)
}
