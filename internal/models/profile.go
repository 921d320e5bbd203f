package models

import "time"

type Language string

const (
	LanguageEN Language = "EN"
	LanguageHU Language = "HU"
)

type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Language  Language  `json:"language"`
	XP        int       `json:"xp"`
	Coins     int       `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
}
