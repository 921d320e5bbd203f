// Package progress holds the rewards a study session earns beyond xp and
// coins: achievements and the growth of the profile's pet.
package progress

import "github.com/vytor/lumina/internal/models"

// AchievementBonusXP is awarded once for every achievement unlocked.
const AchievementBonusXP = 100

// Snapshot summarises a profile's study history after a session is stored.
type Snapshot struct {
	Sessions        int
	TotalMinutes    int
	LongestSession  int
	SubjectsStudied int
	XP              int
}

type Achievement struct {
	ID          string                     `json:"id"`
	Title       map[models.Language]string `json:"title"`
	Description map[models.Language]string `json:"description"`

	met func(Snapshot) bool
}

var catalog = []Achievement{
	{
		ID:          "first_focus",
		Title:       map[models.Language]string{models.LanguageEN: "First Focus", models.LanguageHU: "Első fókusz"},
		Description: map[models.Language]string{models.LanguageEN: "Finish your first study session.", models.LanguageHU: "Fejezd be az első tanulási alkalmat."},
		met:         func(s Snapshot) bool { return s.Sessions >= 1 },
	},
	{
		ID:          "hour_of_power",
		Title:       map[models.Language]string{models.LanguageEN: "Hour of Power", models.LanguageHU: "Egy óra erő"},
		Description: map[models.Language]string{models.LanguageEN: "Study for 60 minutes in total.", models.LanguageHU: "Tanulj összesen 60 percet."},
		met:         func(s Snapshot) bool { return s.TotalMinutes >= 60 },
	},
	{
		ID:          "marathon",
		Title:       map[models.Language]string{models.LanguageEN: "Marathon", models.LanguageHU: "Maraton"},
		Description: map[models.Language]string{models.LanguageEN: "Finish a single session of two hours.", models.LanguageHU: "Tanulj egyhuzamban két órát."},
		met:         func(s Snapshot) bool { return s.LongestSession >= 120 },
	},
	{
		ID:          "regular",
		Title:       map[models.Language]string{models.LanguageEN: "Regular", models.LanguageHU: "Törzsvendég"},
		Description: map[models.Language]string{models.LanguageEN: "Finish 10 study sessions.", models.LanguageHU: "Fejezz be 10 tanulási alkalmat."},
		met:         func(s Snapshot) bool { return s.Sessions >= 10 },
	},
	{
		ID:          "polymath",
		Title:       map[models.Language]string{models.LanguageEN: "Polymath", models.LanguageHU: "Polihisztor"},
		Description: map[models.Language]string{models.LanguageEN: "Study three different subjects.", models.LanguageHU: "Tanulj három különböző tantárgyat."},
		met:         func(s Snapshot) bool { return s.SubjectsStudied >= 3 },
	},
	{
		ID:          "scholar",
		Title:       map[models.Language]string{models.LanguageEN: "Scholar", models.LanguageHU: "Tudós"},
		Description: map[models.Language]string{models.LanguageEN: "Reach 5000 XP.", models.LanguageHU: "Érj el 5000 XP-t."},
		met:         func(s Snapshot) bool { return s.XP >= 5000 },
	},
}

// Catalog returns every achievement in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// NewlyUnlocked returns the ids of achievements met by snap that are not in
// have, in catalog order.
func NewlyUnlocked(snap Snapshot, have map[string]bool) []string {
	var ids []string
	for _, a := range catalog {
		if !have[a.ID] && a.met(snap) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
