package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/progress"
)

func TestNewlyUnlocked(t *testing.T) {
	tests := []struct {
		name string
		snap progress.Snapshot
		have map[string]bool
		want []string
	}{
		{
			name: "first session",
			snap: progress.Snapshot{Sessions: 1, TotalMinutes: 25, LongestSession: 25, SubjectsStudied: 1, XP: 250},
			want: []string{"first_focus"},
		},
		{
			name: "already unlocked is not repeated",
			snap: progress.Snapshot{Sessions: 2, TotalMinutes: 50, LongestSession: 25, SubjectsStudied: 1},
			have: map[string]bool{"first_focus": true},
			want: nil,
		},
		{
			name: "long first session unlocks several in catalog order",
			snap: progress.Snapshot{Sessions: 1, TotalMinutes: 150, LongestSession: 150, SubjectsStudied: 1, XP: 1500},
			want: []string{"first_focus", "hour_of_power", "marathon"},
		},
		{
			name: "breadth and xp",
			snap: progress.Snapshot{Sessions: 10, TotalMinutes: 59, LongestSession: 10, SubjectsStudied: 3, XP: 5000},
			have: map[string]bool{"first_focus": true},
			want: []string{"regular", "polymath", "scholar"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progress.NewlyUnlocked(tt.snap, tt.have))
		})
	}
}

func TestCatalogHasBothLanguages(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range progress.Catalog() {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Title[models.LanguageEN], a.ID)
		assert.NotEmpty(t, a.Title[models.LanguageHU], a.ID)
	}
}

func TestNewPet(t *testing.T) {
	pet, err := progress.NewPet("p1", "Pixel", "mech")
	require.NoError(t, err)
	assert.Equal(t, models.PetEgg, pet.Stage)
	assert.Zero(t, pet.XP)
	assert.Equal(t, 100, pet.Happiness)

	_, err = progress.NewPet("p1", "Pixel", "dragon")
	assert.ErrorIs(t, err, progress.ErrInvalidPetKind)
}

func TestGrowPet(t *testing.T) {
	tests := []struct {
		name      string
		pet       models.Pet
		minutes   int
		wantStage models.PetStage
		wantXP    int
		hunger    int
	}{
		{"egg stays below threshold", models.Pet{Stage: models.PetEgg, XP: 50, Hunger: 20}, 50, models.PetEgg, 100, 15},
		{"egg hatches past 100", models.Pet{Stage: models.PetEgg, XP: 90, Hunger: 3}, 11, models.PetBaby, 101, 0},
		{"baby to teen", models.Pet{Stage: models.PetBaby, XP: 480}, 25, models.PetTeen, 505, 0},
		{"teen to adult", models.Pet{Stage: models.PetTeen, XP: 990}, 30, models.PetAdult, 1020, 0},
		{"stages cascade in one session", models.Pet{Stage: models.PetEgg, XP: 0, Hunger: 60}, 1200, models.PetAdult, 1200, 55},
		{"adult stays adult", models.Pet{Stage: models.PetAdult, XP: 5000}, 5, models.PetAdult, 5005, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progress.GrowPet(tt.pet, tt.minutes)
			assert.Equal(t, tt.wantStage, got.Stage)
			assert.Equal(t, tt.wantXP, got.XP)
			assert.Equal(t, tt.hunger, got.Hunger)
		})
	}
}
