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

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("creating profile: id=%s, username=%s", p.ID, p.Username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (id, username, language, xp, coins, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, p.ID, p.Username, string(p.Language), p.XP, p.Coins, toMillis(p.CreatedAt))
	if isUniqueViolation(err) {
		log.Debug("username already taken: %s", p.Username)
		return fmt.Errorf("profile %q: %w", p.Username, repository.ErrDuplicate)
	}
	if err != nil {
		log.Error("failed to create profile: %v", err)
	}
	return err
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, language, xp, coins, created_at
FROM profiles
ORDER BY created_at ASC, username ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%s", id)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
SELECT id, username, language, xp, coins, created_at
FROM profiles
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile. Subjects, sessions, cards and review history
// go with it through ON DELETE CASCADE.
func (r *profileRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile and related data: id=%s", id)

	err := execOne(ctx, r.db, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to delete profile %s: %v", id, err)
	}
	return err
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var lang string
	var created int64
	if err := row.Scan(&p.ID, &p.Username, &lang, &p.XP, &p.Coins, &created); err != nil {
		return p, err
	}
	p.Language = models.Language(lang)
	p.CreatedAt = fromMillis(created)
	return p, nil
}
