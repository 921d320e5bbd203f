package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
	"github.com/vytor/lumina/internal/repository/sqlite"
	"github.com/vytor/lumina/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.StatsRepository
	cards   repository.FlashcardRepository
	profile models.Profile
	subject models.Subject
	now     time.Time
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.cards = sqlite.NewFlashcardRepository(s.db)
	s.profile = testutil.SeedProfile(s.T(), s.db, "anna")
	s.subject = testutil.SeedSubject(s.T(), s.db, s.profile.ID, "Biology")
	s.now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) card(interval int, ease float64, due time.Time) models.Flashcard {
	return models.Flashcard{
		ID: uuid.NewString(), ProfileID: s.profile.ID, SubjectID: s.subject.ID,
		Front: "f", Back: "b", Interval: interval, Repetitions: 1, Ease: ease,
		NextReviewDate: due, CreatedAt: s.now,
	}
}

func (s *StatsRepositorySuite) TestEmptyProfile() {
	stat, err := s.repo.FlashcardStats(context.Background(), s.profile.ID, s.now)
	s.Require().NoError(err)
	s.Assert().Equal(models.FlashcardStat{}, *stat)

	times, err := s.repo.FlashcardTimeStats(context.Background(), s.profile.ID)
	s.Require().NoError(err)
	s.Assert().Zero(times.AvgTimeSeconds)
	s.Assert().Empty(times.TimeByRating)
}

func (s *StatsRepositorySuite) TestFlashcardStats() {
	ctx := context.Background()
	mastered := s.card(30, 2.6, s.now.Add(30*24*time.Hour))
	struggling := s.card(1, 1.5, s.now.Add(-time.Hour))
	soon := s.card(6, 2.5, s.now.Add(2*time.Hour))
	s.Require().NoError(s.cards.InsertBatch(ctx, []models.Flashcard{mastered, struggling, soon}))

	for _, rating := range []int{1, 3, 3, 4} {
		s.Require().NoError(s.cards.InsertReviewHistory(ctx, models.ReviewHistory{
			FlashcardID: struggling.ID, Rating: rating, Ease: 1.5, TimeSeconds: float64(rating), ReviewedAt: s.now,
		}))
	}

	stat, err := s.repo.FlashcardStats(ctx, s.profile.ID, s.now)
	s.Require().NoError(err)
	s.Assert().Equal(3, stat.TotalCards)
	s.Assert().Equal(1, stat.CardsMastered)
	s.Assert().Equal(1, stat.CardsStruggling)
	s.Assert().Equal(1, stat.CardsDue)
	s.Assert().Equal(1, stat.CardsDueSoon)
	s.Assert().Equal(4, stat.TotalReviews)
	s.Assert().Equal(75.0, stat.OverallAccuracy)
	s.Assert().InDelta((2.6+1.5+2.5)/3, stat.AvgEase, 1e-9)
	s.Assert().InDelta(37.0/3, stat.AvgIntervalDays, 1e-9)

	subjects, err := s.repo.FlashcardSubjectStats(ctx, s.profile.ID, s.now)
	s.Require().NoError(err)
	s.Require().Len(subjects, 1)
	s.Assert().Equal("Biology", subjects[0].SubjectName)
	s.Assert().Equal(3, subjects[0].TotalCards)
	s.Assert().Equal(1, subjects[0].CardsDue)
	s.Assert().Equal(75.0, subjects[0].AvgAccuracy)

	times, err := s.repo.FlashcardTimeStats(ctx, s.profile.ID)
	s.Require().NoError(err)
	s.Assert().Equal(2.75, times.AvgTimeSeconds)
	s.Assert().Equal(1.0, times.FastestTime)
	s.Assert().Equal(4.0, times.SlowestTime)
	s.Assert().Equal(3.0, times.MedianTimeSeconds)
	s.Assert().Equal(3.0, times.TimeByRating[3])
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
