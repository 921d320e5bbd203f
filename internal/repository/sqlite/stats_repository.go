package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

const (
	masteredIntervalDays = 21
	strugglingEase       = 2.0
	dueSoonWindow        = 24 * time.Hour
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) FlashcardStats(ctx context.Context, profileID string, now time.Time) (*models.FlashcardStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching flashcard stats: profile_id=%s", profileID)

	nowMs := toMillis(now)
	var stat models.FlashcardStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*) AS total_cards,
    COALESCE(SUM(CASE WHEN f.interval_days >= ? THEN 1 ELSE 0 END), 0) AS cards_mastered,
    COALESCE(SUM(CASE WHEN f.ease < ? THEN 1 ELSE 0 END), 0) AS cards_struggling,
    COALESCE(SUM(CASE WHEN f.next_review_date <= ? THEN 1 ELSE 0 END), 0) AS cards_due,
    COALESCE(SUM(CASE WHEN f.next_review_date > ? AND f.next_review_date <= ? THEN 1 ELSE 0 END), 0) AS cards_due_soon,
    COALESCE(AVG(f.ease), 0) AS avg_ease,
    COALESCE(AVG(f.interval_days), 0) AS avg_interval_days
FROM flashcards f
WHERE f.profile_id = ?
`, masteredIntervalDays, strugglingEase, nowMs, nowMs, toMillis(now.Add(dueSoonWindow)), profileID).Scan(
		&stat.TotalCards,
		&stat.CardsMastered,
		&stat.CardsStruggling,
		&stat.CardsDue,
		&stat.CardsDueSoon,
		&stat.AvgEase,
		&stat.AvgIntervalDays,
	)
	if err != nil {
		log.Error("failed to get flashcard stats: %v", err)
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*) AS total_reviews,
    CASE
        WHEN COUNT(*) > 0
        THEN ROUND(100.0 * SUM(CASE WHEN rh.rating > 1 THEN 1 ELSE 0 END) / COUNT(*), 1)
        ELSE 0
    END AS overall_accuracy
FROM review_history rh
JOIN flashcards f ON f.id = rh.flashcard_id
WHERE f.profile_id = ?
`, profileID).Scan(&stat.TotalReviews, &stat.OverallAccuracy)
	if err != nil {
		log.Error("failed to get review totals: %v", err)
		return nil, err
	}
	return &stat, nil
}

func (r *statsRepository) FlashcardSubjectStats(ctx context.Context, profileID string, now time.Time) ([]models.FlashcardSubjectStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching flashcard subject stats: profile_id=%s", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT
    s.id,
    s.name,
    COUNT(f.id) AS total_cards,
    COALESCE(SUM(CASE WHEN f.next_review_date <= ? THEN 1 ELSE 0 END), 0) AS cards_due,
    COALESCE(AVG(f.ease), 0) AS avg_ease,
    COALESCE((
        SELECT ROUND(100.0 * SUM(CASE WHEN rh.rating > 1 THEN 1 ELSE 0 END) / COUNT(*), 1)
        FROM review_history rh
        JOIN flashcards f2 ON f2.id = rh.flashcard_id
        WHERE f2.subject_id = s.id
    ), 0) AS avg_accuracy
FROM subjects s
LEFT JOIN flashcards f ON f.subject_id = s.id
WHERE s.profile_id = ?
GROUP BY s.id, s.name
ORDER BY s.name ASC
`, toMillis(now), profileID)
	if err != nil {
		log.Error("failed to query subject stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.FlashcardSubjectStat
	for rows.Next() {
		var s models.FlashcardSubjectStat
		if err := rows.Scan(&s.SubjectID, &s.SubjectName, &s.TotalCards, &s.CardsDue, &s.AvgEase, &s.AvgAccuracy); err != nil {
			log.Error("failed to scan subject stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) FlashcardTimeStats(ctx context.Context, profileID string) (*models.FlashcardTimeStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching flashcard time stats: profile_id=%s", profileID)

	var avgTime, fastestTime, slowestTime float64
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(AVG(rh.time_seconds), 0) AS avg_time_seconds,
    COALESCE(MIN(rh.time_seconds), 0) AS fastest_time,
    COALESCE(MAX(rh.time_seconds), 0) AS slowest_time
FROM review_history rh
JOIN flashcards f ON f.id = rh.flashcard_id
WHERE f.profile_id = ?
`, profileID).Scan(&count, &avgTime, &fastestTime, &slowestTime)
	if err != nil {
		log.Error("failed to get time stats: %v", err)
		return nil, err
	}

	var medianTime float64
	if count > 0 {
		err = r.db.QueryRowContext(ctx, `
SELECT rh.time_seconds FROM review_history rh
JOIN flashcards f ON f.id = rh.flashcard_id
WHERE f.profile_id = ?
ORDER BY rh.time_seconds
LIMIT 1 OFFSET ?
`, profileID, count/2).Scan(&medianTime)
		if err != nil {
			log.Warn("failed to get median time, falling back to average: %v", err)
			medianTime = avgTime
		}
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT
    rh.rating,
    COALESCE(AVG(rh.time_seconds), 0) AS avg_time
FROM review_history rh
JOIN flashcards f ON f.id = rh.flashcard_id
WHERE f.profile_id = ?
GROUP BY rh.rating
`, profileID)
	if err != nil {
		log.Error("failed to query time by rating: %v", err)
		return nil, err
	}
	defer rows.Close()

	timeByRating := make(map[int]float64)
	for rows.Next() {
		var rating int
		var avg float64
		if err := rows.Scan(&rating, &avg); err != nil {
			log.Error("failed to scan time by rating: %v", err)
			return nil, err
		}
		timeByRating[rating] = avg
	}

	return &models.FlashcardTimeStat{
		AvgTimeSeconds:    avgTime,
		MedianTimeSeconds: medianTime,
		FastestTime:       fastestTime,
		SlowestTime:       slowestTime,
		TimeByRating:      timeByRating,
	}, rows.Err()
}
