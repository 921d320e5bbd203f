package repository

import (
	"context"

	"github.com/vytor/lumina/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Create(ctx context.Context, p models.Profile) error
	Get(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Delete(ctx context.Context, id string) error
}
