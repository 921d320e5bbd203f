package models

import "time"

type Subject struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	Name          string    `json:"name"`
	TotalMinutes  int       `json:"total_minutes"`
	SessionsCount int       `json:"sessions_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// StudySession is one completed focus block.
type StudySession struct {
	ID              string    `json:"id"`
	ProfileID       string    `json:"profile_id"`
	SubjectID       string    `json:"subject_id"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
	Mood            string    `json:"mood,omitempty"`
	XPEarned        int       `json:"xp_earned"`
	CoinsEarned     int       `json:"coins_earned"`
	CreatedAt       time.Time `json:"created_at"`
}
