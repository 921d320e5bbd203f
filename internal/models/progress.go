package models

import "time"

type PetStage string

const (
	PetEgg   PetStage = "egg"
	PetBaby  PetStage = "baby"
	PetTeen  PetStage = "teen"
	PetAdult PetStage = "adult"
)

// Pet is the study companion that grows with focused minutes.
type Pet struct {
	ProfileID string    `json:"profile_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Stage     PetStage  `json:"stage"`
	XP        int       `json:"xp"`
	Hunger    int       `json:"hunger"`
	Happiness int       `json:"happiness"`
	CreatedAt time.Time `json:"created_at"`
}

// UnlockedAchievement records when a profile earned an achievement.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// SessionOutcome is what a stored session changed beyond the base rewards.
type SessionOutcome struct {
	Unlocked []string `json:"unlocked_achievements"`
	BonusXP  int      `json:"bonus_xp"`
	Pet      *Pet     `json:"pet,omitempty"`
}
