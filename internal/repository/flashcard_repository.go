package repository

import (
	"context"

	"github.com/vytor/lumina/internal/models"
)

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	InsertBatch(ctx context.Context, cards []models.Flashcard) error
	Update(ctx context.Context, card models.Flashcard) error
	Get(ctx context.Context, id, profileID string) (*models.Flashcard, error)
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Count(ctx context.Context, filter models.FlashcardFilter) (int, error)
	Delete(ctx context.Context, id, profileID string) error
	InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error
}
