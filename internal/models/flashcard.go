package models

import "time"

// Flashcard is a single spaced-repetition unit owned by a profile.
type Flashcard struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profile_id"`
	SubjectID      string    `json:"subject_id"`
	SessionID      string    `json:"session_id,omitempty"`
	Front          string    `json:"front"`
	Back           string    `json:"back"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
	Ease           float64   `json:"ease"`
	NextReviewDate time.Time `json:"next_review_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsDue reports whether the card is scheduled at or before now.
func (c Flashcard) IsDue(now time.Time) bool {
	return !c.NextReviewDate.After(now)
}

// CardDraft is a front/back pair that has not been scheduled yet.
type CardDraft struct {
	Front string `json:"front" validate:"required,max=1000"`
	Back  string `json:"back" validate:"required,max=4000"`
}

type FlashcardFilter struct {
	ProfileID string
	SubjectID string
	DueBefore *time.Time
	Limit     int
	Offset    int
}

type ReviewHistory struct {
	ID          int64     `json:"id"`
	FlashcardID string    `json:"flashcard_id"`
	Rating      int       `json:"rating"`
	Interval    int       `json:"interval"`
	Ease        float64   `json:"ease"`
	TimeSeconds float64   `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}
