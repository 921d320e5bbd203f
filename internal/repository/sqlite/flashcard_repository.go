package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

var flashcardColumns = []string{
	"id", "profile_id", "subject_id", "session_id", "front", "back",
	"interval_days", "repetitions", "ease", "next_review_date", "created_at",
}

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("batch inserting %d flashcards", len(cards))

	if len(cards) == 0 {
		return nil
	}

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO flashcards (
    id, profile_id, subject_id, session_id, front, back,
    interval_days, repetitions, ease, next_review_date, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			_, err := stmt.ExecContext(ctx, c.ID, c.ProfileID, c.SubjectID, nullString(c.SessionID), c.Front, c.Back,
				c.Interval, c.Repetitions, c.Ease, toMillis(c.NextReviewDate), toMillis(c.CreatedAt))
			if err != nil {
				log.Error("failed to insert flashcard id=%s: %v", c.ID, err)
				if isUniqueViolation(err) {
					return fmt.Errorf("flashcard %s: %w", c.ID, repository.ErrDuplicate)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Debug("inserted %d flashcards", len(cards))
	return nil
}

// Update stores the scheduling fields of a card. Content is immutable here.
func (r *flashcardRepository) Update(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard: id=%s, interval=%d, reps=%d, ease=%.2f", c.ID, c.Interval, c.Repetitions, c.Ease)

	err := execOne(ctx, r.db, `
UPDATE flashcards
SET interval_days = ?, repetitions = ?, ease = ?, next_review_date = ?
WHERE id = ? AND profile_id = ?
`, c.Interval, c.Repetitions, c.Ease, toMillis(c.NextReviewDate), c.ID, c.ProfileID)
	if err != nil {
		log.Error("failed to update flashcard %s: %v", c.ID, err)
	}
	return err
}

func (r *flashcardRepository) Get(ctx context.Context, id, profileID string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%s, profile_id=%s", id, profileID)

	query, args, err := sqlBuilder.Select(flashcardColumns...).
		From("flashcards").
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanFlashcard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

// List returns cards in insertion order. A zero Limit returns every match.
func (r *flashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards with filter: profile_id=%s, subject_id=%s, due_only=%t, limit=%d",
		filter.ProfileID, filter.SubjectID, filter.DueBefore != nil, filter.Limit)

	query := applyFlashcardFilter(sqlBuilder.Select(flashcardColumns...).From("flashcards"), filter).
		OrderBy("rowid ASC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}

func (r *flashcardRepository) Count(ctx context.Context, filter models.FlashcardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	sqlStr, args, err := applyFlashcardFilter(sqlBuilder.Select("COUNT(*)").From("flashcards"), filter).ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count flashcards: %v", err)
		return 0, err
	}
	log.Debug("counted %d flashcards", count)
	return count, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, id, profileID string) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%s, profile_id=%s", id, profileID)

	err := execOne(ctx, r.db, `DELETE FROM flashcards WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to delete flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting review history: flashcard_id=%s, rating=%d, time=%.2fs", h.FlashcardID, h.Rating, h.TimeSeconds)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (flashcard_id, rating, interval_days, ease, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, h.FlashcardID, h.Rating, h.Interval, h.Ease, h.TimeSeconds, toMillis(h.ReviewedAt))
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func applyFlashcardFilter(query squirrel.SelectBuilder, filter models.FlashcardFilter) squirrel.SelectBuilder {
	if filter.ProfileID != "" {
		query = query.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.SubjectID != "" {
		query = query.Where(squirrel.Eq{"subject_id": filter.SubjectID})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"next_review_date": toMillis(*filter.DueBefore)})
	}
	return query
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(row rowScanner) (models.Flashcard, error) {
	var c models.Flashcard
	var sessionID sql.NullString
	var nextReview, created int64
	err := row.Scan(&c.ID, &c.ProfileID, &c.SubjectID, &sessionID, &c.Front, &c.Back,
		&c.Interval, &c.Repetitions, &c.Ease, &nextReview, &created)
	if err != nil {
		return c, err
	}
	c.SessionID = sessionID.String
	c.NextReviewDate = fromMillis(nextReview)
	c.CreatedAt = fromMillis(created)
	return c, nil
}
