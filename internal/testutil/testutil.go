package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lumina/internal/db"
	"github.com/vytor/lumina/internal/models"
)

var dbCounter atomic.Int64

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// Each call gets its own database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	database, err := db.Open(context.Background(), name)
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedProfile inserts a profile and returns it.
func SeedProfile(t *testing.T, sqlDB *sql.DB, username string) models.Profile {
	t.Helper()
	p := models.Profile{
		ID:        uuid.NewString(),
		Username:  username,
		Language:  models.LanguageEN,
		CreatedAt: time.Now().UTC(),
	}
	_, err := sqlDB.Exec(`INSERT INTO profiles (id, username, language, xp, coins, created_at) VALUES (?, ?, ?, 0, 0, ?)`,
		p.ID, p.Username, string(p.Language), p.CreatedAt.UnixMilli())
	require.NoError(t, err)
	return p
}

// SeedSubject inserts a subject owned by profileID and returns it.
func SeedSubject(t *testing.T, sqlDB *sql.DB, profileID, name string) models.Subject {
	t.Helper()
	s := models.Subject{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := sqlDB.Exec(`INSERT INTO subjects (id, profile_id, name, total_minutes, sessions_count, created_at) VALUES (?, ?, ?, 0, 0, ?)`,
		s.ID, s.ProfileID, s.Name, s.CreatedAt.UnixMilli())
	require.NoError(t, err)
	return s
}
