package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/progress"
	"github.com/vytor/lumina/internal/repository"
)

const maxPetNameLength = 32

// AchievementView is a catalog entry with the profile's unlock time, if any.
type AchievementView struct {
	progress.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// ProgressService exposes achievements and the profile's pet
type ProgressService interface {
	ListAchievements(ctx context.Context, profileID string) ([]AchievementView, error)
	GetPet(ctx context.Context, profileID string) (*models.Pet, error)
	AdoptPet(ctx context.Context, profileID, name, kind string) (*models.Pet, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	clock        flashcard.Clock
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository, clock flashcard.Clock) ProgressService {
	if clock == nil {
		clock = flashcard.SystemClock
	}
	return &progressService{progressRepo: progressRepo, clock: clock}
}

func (s *progressService) ListAchievements(ctx context.Context, profileID string) ([]AchievementView, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing achievements: profile_id=%s", profileID)

	unlocked, err := s.progressRepo.ListAchievements(ctx, profileID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	at := make(map[string]time.Time, len(unlocked))
	for _, u := range unlocked {
		at[u.AchievementID] = u.UnlockedAt
	}

	catalog := progress.Catalog()
	views := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		v := AchievementView{Achievement: a}
		if t, ok := at[a.ID]; ok {
			v.Unlocked = true
			v.UnlockedAt = &t
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *progressService) GetPet(ctx context.Context, profileID string) (*models.Pet, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting pet: profile_id=%s", profileID)

	pet, err := s.progressRepo.GetPet(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if pet == nil {
		return nil, errors.NewNotFoundError("pet", profileID)
	}
	return pet, nil
}

// AdoptPet gives the profile its pet. A profile has at most one.
func (s *progressService) AdoptPet(ctx context.Context, profileID, name, kind string) (*models.Pet, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	if len([]rune(name)) > maxPetNameLength {
		return nil, errors.NewValidationError("name", "must be at most 32 characters")
	}

	pet, err := progress.NewPet(profileID, name, strings.ToLower(strings.TrimSpace(kind)))
	if err != nil {
		return nil, errors.NewValidationError("kind", "must be one of geometry, organic, mech, void")
	}
	pet.CreatedAt = s.clock.Now().UTC()

	if err := s.progressRepo.CreatePet(ctx, pet); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrDuplicate):
			return nil, errors.NewConflictError("profile already has a pet")
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NewNotFoundError("profile", profileID)
		}
		log.Error("failed to create pet: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("pet adopted: profile_id=%s, kind=%s", profileID, pet.Kind)
	return &pet, nil
}
