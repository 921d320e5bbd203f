package services

import (
	"context"

	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetFlashcardStats(ctx context.Context, profileID string) (*models.FlashcardStat, error)
	GetFlashcardSubjectStats(ctx context.Context, profileID string) ([]models.FlashcardSubjectStat, error)
	GetFlashcardTimeStats(ctx context.Context, profileID string) (*models.FlashcardTimeStat, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	clock     flashcard.Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, clock flashcard.Clock) StatsService {
	if clock == nil {
		clock = flashcard.SystemClock
	}
	return &statsService{statsRepo: statsRepo, clock: clock}
}

func (s *statsService) GetFlashcardStats(ctx context.Context, profileID string) (*models.FlashcardStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard stats: profile_id=%s", profileID)

	stats, err := s.statsRepo.FlashcardStats(ctx, profileID, s.clock.Now())
	if err != nil {
		log.Error("failed to get flashcard stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

func (s *statsService) GetFlashcardSubjectStats(ctx context.Context, profileID string) ([]models.FlashcardSubjectStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard subject stats: profile_id=%s", profileID)

	stats, err := s.statsRepo.FlashcardSubjectStats(ctx, profileID, s.clock.Now())
	if err != nil {
		log.Error("failed to get flashcard subject stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

func (s *statsService) GetFlashcardTimeStats(ctx context.Context, profileID string) (*models.FlashcardTimeStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard time stats: profile_id=%s", profileID)

	stats, err := s.statsRepo.FlashcardTimeStats(ctx, profileID)
	if err != nil {
		log.Error("failed to get flashcard time stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}
