package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
	"github.com/vytor/lumina/internal/services"
	"github.com/vytor/lumina/internal/testutil/mocks"
)

func TestProfileService_CreateProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
		return p.Username == "anna" && p.Language == models.LanguageEN && p.ID != "" && p.CreatedAt.Equal(now)
	})).Return(nil)

	svc := services.NewProfileService(repo, newTestClock(now))
	p, err := svc.CreateProfile(context.Background(), "  anna ", "")
	require.NoError(t, err)
	assert.Equal(t, "anna", p.Username)
	assert.Equal(t, models.LanguageEN, p.Language)
	repo.AssertExpectations(t)
}

func TestProfileService_CreateProfileValidation(t *testing.T) {
	svc := services.NewProfileService(new(mocks.MockProfileRepository), nil)

	_, err := svc.CreateProfile(context.Background(), "   ", models.LanguageEN)
	requireAppError(t, err, apperrors.ErrCodeValidation, 400)

	_, err = svc.CreateProfile(context.Background(), "anna", models.Language("DE"))
	requireAppError(t, err, apperrors.ErrCodeValidation, 400)
}

func TestProfileService_CreateProfileConflict(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("profile: %w", repository.ErrDuplicate))

	svc := services.NewProfileService(repo, nil)
	_, err := svc.CreateProfile(context.Background(), "anna", models.LanguageHU)
	requireAppError(t, err, apperrors.ErrCodeConflict, 409)
}

func TestProfileService_GetProfileNotFound(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Get", mock.Anything, "missing").Return(nil, nil)

	svc := services.NewProfileService(repo, nil)
	_, err := svc.GetProfile(context.Background(), "missing")
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)
}

func TestProfileService_DeleteProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Delete", mock.Anything, "p1").Return(nil)
	repo.On("Delete", mock.Anything, "gone").Return(repository.ErrNotFound)

	svc := services.NewProfileService(repo, nil)
	require.NoError(t, svc.DeleteProfile(context.Background(), "p1"))

	err := svc.DeleteProfile(context.Background(), "gone")
	requireAppError(t, err, apperrors.ErrCodeNotFound, 404)
}
