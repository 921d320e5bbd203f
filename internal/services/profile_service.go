package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

const maxUsernameLength = 64

// ProfileService handles profile-related business logic
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, username string, language models.Language) (*models.Profile, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	clock       flashcard.Clock
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository, clock flashcard.Clock) ProfileService {
	if clock == nil {
		clock = flashcard.SystemClock
	}
	return &profileService{profileRepo: profileRepo, clock: clock}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing profiles")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profiles, nil
}

func (s *profileService) CreateProfile(ctx context.Context, username string, language models.Language) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating profile: username=%s", username)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if len(username) > maxUsernameLength {
		return nil, errors.NewValidationError("username", "is too long")
	}
	switch language {
	case "":
		language = models.LanguageEN
	case models.LanguageEN, models.LanguageHU:
	default:
		return nil, errors.NewValidationError("language", "must be EN or HU")
	}

	profile := models.Profile{
		ID:        uuid.NewString(),
		Username:  username,
		Language:  language,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.NewConflictError("username already taken: " + username)
		}
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("profile created: id=%s, username=%s", profile.ID, profile.Username)
	return &profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: id=%s", id)

	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}

	return profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting profile: id=%s", id)

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("profile", id)
		}
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
