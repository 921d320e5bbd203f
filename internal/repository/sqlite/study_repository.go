package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/repository"
)

type studyRepository struct {
	db *sql.DB
}

// NewStudyRepository creates a new StudyRepository implementation
func NewStudyRepository(db *sql.DB) repository.StudyRepository {
	return &studyRepository{db: db}
}

func (r *studyRepository) CreateSubject(ctx context.Context, s models.Subject) error {
	log := logger.FromContext(ctx).WithPrefix("study_repo")
	log.Debug("creating subject: profile_id=%s, name=%s", s.ProfileID, s.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO subjects (id, profile_id, name, total_minutes, sessions_count, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, s.ID, s.ProfileID, s.Name, s.TotalMinutes, s.SessionsCount, toMillis(s.CreatedAt))
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("subject %q: %w", s.Name, repository.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("profile %s: %w", s.ProfileID, repository.ErrNotFound)
	case err != nil:
		log.Error("failed to create subject: %v", err)
	}
	return err
}

func (r *studyRepository) GetSubject(ctx context.Context, id, profileID string) (*models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("study_repo")
	log.Debug("getting subject: id=%s, profile_id=%s", id, profileID)

	s, err := scanSubject(r.db.QueryRowContext(ctx, `
SELECT id, profile_id, name, total_minutes, sessions_count, created_at
FROM subjects
WHERE id = ? AND profile_id = ?
`, id, profileID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("subject not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get subject: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *studyRepository) ListSubjects(ctx context.Context, profileID string) ([]models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("study_repo")
	log.Debug("listing subjects: profile_id=%s", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, name, total_minutes, sessions_count, created_at
FROM subjects
WHERE profile_id = ?
ORDER BY name ASC
`, profileID)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			log.Error("failed to scan subject row: %v", err)
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *studyRepository) InsertSession(ctx context.Context, s models.StudySession) (*models.SessionOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("study_repo")
	log.Debug("inserting study session: profile_id=%s, subject_id=%s, minutes=%d", s.ProfileID, s.SubjectID, s.DurationMinutes)

	var outcome *models.SessionOutcome
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := execOne(ctx, tx, `
UPDATE subjects
SET total_minutes = total_minutes + ?, sessions_count = sessions_count + 1
WHERE id = ? AND profile_id = ?
`, s.DurationMinutes, s.SubjectID, s.ProfileID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("subject %s: %w", s.SubjectID, err)
			}
			log.Error("failed to credit subject %s: %v", s.SubjectID, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO study_sessions (id, profile_id, subject_id, duration_minutes, notes, mood, xp_earned, coins_earned, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.ProfileID, s.SubjectID, s.DurationMinutes, s.Notes, s.Mood, s.XPEarned, s.CoinsEarned, toMillis(s.CreatedAt)); err != nil {
			log.Error("failed to insert study session: %v", err)
			return err
		}

		if err := execOne(ctx, tx, `UPDATE profiles SET xp = xp + ?, coins = coins + ? WHERE id = ?`,
			s.XPEarned, s.CoinsEarned, s.ProfileID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("profile %s: %w", s.ProfileID, err)
			}
			log.Error("failed to credit profile %s: %v", s.ProfileID, err)
			return err
		}

		var err error
		outcome, err = applyProgress(ctx, tx, s)
		if err != nil {
			log.Error("failed to apply session progress: %v", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (r *studyRepository) ListSessions(ctx context.Context, profileID string, limit int) ([]models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("study_repo")
	log.Debug("listing study sessions: profile_id=%s, limit=%d", profileID, limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, subject_id, duration_minutes, notes, mood, xp_earned, coins_earned, created_at
FROM study_sessions
WHERE profile_id = ?
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`, profileID, limit)
	if err != nil {
		log.Error("failed to list study sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var s models.StudySession
		var created int64
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.SubjectID, &s.DurationMinutes, &s.Notes, &s.Mood, &s.XPEarned, &s.CoinsEarned, &created); err != nil {
			log.Error("failed to scan study session row: %v", err)
			return nil, err
		}
		s.CreatedAt = fromMillis(created)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSubject(row rowScanner) (models.Subject, error) {
	var s models.Subject
	var created int64
	if err := row.Scan(&s.ID, &s.ProfileID, &s.Name, &s.TotalMinutes, &s.SessionsCount, &created); err != nil {
		return s, err
	}
	s.CreatedAt = fromMillis(created)
	return s, nil
}
