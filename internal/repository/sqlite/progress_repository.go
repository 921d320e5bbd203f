package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/progress"
	"github.com/vytor/lumina/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListAchievements(ctx context.Context, profileID string) ([]models.UnlockedAchievement, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing achievements: profile_id=%s", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT achievement_id, unlocked_at
FROM achievements
WHERE profile_id = ?
ORDER BY unlocked_at ASC, achievement_id ASC
`, profileID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.UnlockedAchievement
	for rows.Next() {
		var a models.UnlockedAchievement
		var unlocked int64
		if err := rows.Scan(&a.AchievementID, &unlocked); err != nil {
			log.Error("failed to scan achievement row: %v", err)
			return nil, err
		}
		a.UnlockedAt = fromMillis(unlocked)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *progressRepository) GetPet(ctx context.Context, profileID string) (*models.Pet, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting pet: profile_id=%s", profileID)

	pet, err := getPet(ctx, r.db, profileID)
	if err != nil {
		log.Error("failed to get pet: %v", err)
	}
	return pet, err
}

func (r *progressRepository) CreatePet(ctx context.Context, pet models.Pet) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("creating pet: profile_id=%s, kind=%s", pet.ProfileID, pet.Kind)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO pets (profile_id, name, kind, stage, xp, hunger, happiness, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, pet.ProfileID, pet.Name, pet.Kind, string(pet.Stage), pet.XP, pet.Hunger, pet.Happiness, toMillis(pet.CreatedAt))
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("pet for profile %s: %w", pet.ProfileID, repository.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("profile %s: %w", pet.ProfileID, repository.ErrNotFound)
	case err != nil:
		log.Error("failed to create pet: %v", err)
	}
	return err
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getPet returns nil, nil when the profile has no pet.
func getPet(ctx context.Context, db queryer, profileID string) (*models.Pet, error) {
	var p models.Pet
	var stage string
	var created int64
	err := db.QueryRowContext(ctx, `
SELECT profile_id, name, kind, stage, xp, hunger, happiness, created_at
FROM pets
WHERE profile_id = ?
`, profileID).Scan(&p.ProfileID, &p.Name, &p.Kind, &stage, &p.XP, &p.Hunger, &p.Happiness, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Stage = models.PetStage(stage)
	p.CreatedAt = fromMillis(created)
	return &p, nil
}

// applyProgress unlocks achievements and grows the pet for a session that
// has already been written in tx.
func applyProgress(ctx context.Context, tx *sql.Tx, s models.StudySession) (*models.SessionOutcome, error) {
	var snap progress.Snapshot
	if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(duration_minutes), 0), COALESCE(MAX(duration_minutes), 0), COUNT(DISTINCT subject_id)
FROM study_sessions
WHERE profile_id = ?
`, s.ProfileID).Scan(&snap.Sessions, &snap.TotalMinutes, &snap.LongestSession, &snap.SubjectsStudied); err != nil {
		return nil, fmt.Errorf("load session totals: %w", err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT xp FROM profiles WHERE id = ?`, s.ProfileID).Scan(&snap.XP); err != nil {
		return nil, fmt.Errorf("load profile xp: %w", err)
	}

	have, err := unlockedIDs(ctx, tx, s.ProfileID)
	if err != nil {
		return nil, err
	}

	outcome := &models.SessionOutcome{Unlocked: progress.NewlyUnlocked(snap, have)}
	for _, id := range outcome.Unlocked {
		if _, err := tx.ExecContext(ctx, `INSERT INTO achievements (profile_id, achievement_id, unlocked_at) VALUES (?, ?, ?)`,
			s.ProfileID, id, toMillis(s.CreatedAt)); err != nil {
			return nil, fmt.Errorf("unlock achievement %s: %w", id, err)
		}
	}
	outcome.BonusXP = len(outcome.Unlocked) * progress.AchievementBonusXP
	if outcome.BonusXP > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE profiles SET xp = xp + ? WHERE id = ?`, outcome.BonusXP, s.ProfileID); err != nil {
			return nil, fmt.Errorf("credit achievement bonus: %w", err)
		}
	}

	pet, err := getPet(ctx, tx, s.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("load pet: %w", err)
	}
	if pet != nil {
		grown := progress.GrowPet(*pet, s.DurationMinutes)
		if _, err := tx.ExecContext(ctx, `UPDATE pets SET stage = ?, xp = ?, hunger = ? WHERE profile_id = ?`,
			string(grown.Stage), grown.XP, grown.Hunger, s.ProfileID); err != nil {
			return nil, fmt.Errorf("grow pet: %w", err)
		}
		outcome.Pet = &grown
	}
	return outcome, nil
}

func unlockedIDs(ctx context.Context, tx *sql.Tx, profileID string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT achievement_id FROM achievements WHERE profile_id = ?`, profileID)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		have[id] = true
	}
	return have, rows.Err()
}
