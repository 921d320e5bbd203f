package flashcard

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/lumina/internal/models"
)

const (
	InitialEase = 2.5
	MinEase     = 1.3
	EaseStep    = 0.15

	// MaxInterval bounds the interval in days, roughly a century. Longer
	// intervals would overflow time.Duration when scheduling.
	MaxInterval = 36500

	Day = 24 * time.Hour
)

// NewCard schedules a freshly generated card. It is due immediately.
func NewCard(id, profileID, subjectID string, draft models.CardDraft, now time.Time) models.Flashcard {
	return models.Flashcard{
		ID:             id,
		ProfileID:      profileID,
		SubjectID:      subjectID,
		Front:          draft.Front,
		Back:           draft.Back,
		Interval:       0,
		Repetitions:    0,
		Ease:           InitialEase,
		NextReviewDate: now,
		CreatedAt:      now,
	}
}

// Rate applies a single review to card using a simplified SM-2 and returns the
// rescheduled copy. The input card is not modified.
//
// Again resets repetitions and interval and makes the card due at now. Any
// other rating counts as a success: Hard lowers ease by EaseStep, Easy raises
// it, and the interval grows 1, 6, then previous interval times the new ease,
// never beyond MaxInterval.
func Rate(card models.Flashcard, rating Rating, now time.Time) (models.Flashcard, error) {
	if !rating.IsValid() {
		return card, fmt.Errorf("%w: rating %d", ErrInvalidArgument, int(rating))
	}
	if err := checkNow(now); err != nil {
		return card, err
	}
	if err := CheckInvariants(card); err != nil {
		return card, err
	}

	if rating == Again {
		card.Repetitions = 0
		card.Interval = 0
		card.NextReviewDate = now
		return card, nil
	}

	card.Repetitions++
	switch rating {
	case Hard:
		card.Ease -= EaseStep
	case Easy:
		card.Ease += EaseStep
	}
	card.Ease = math.Max(MinEase, card.Ease)

	switch card.Repetitions {
	case 1:
		card.Interval = 1
	case 2:
		card.Interval = 6
	default:
		card.Interval = growInterval(card.Interval, card.Ease)
	}

	card.NextReviewDate = now.Add(time.Duration(max(1, card.Interval)) * Day)
	return card, nil
}

// growInterval returns round(interval*ease), saturated at MaxInterval.
func growInterval(interval int, ease float64) int {
	next := math.Round(float64(interval) * ease)
	if next >= MaxInterval {
		return MaxInterval
	}
	return int(next)
}

// CheckInvariants reports a card whose schedule could not have been produced
// by Rate or NewCard.
func CheckInvariants(card models.Flashcard) error {
	switch {
	case math.IsNaN(card.Ease) || card.Ease < MinEase:
		return fmt.Errorf("%w: ease %.2f below %.1f", ErrInvalidArgument, card.Ease, MinEase)
	case card.Interval < 0:
		return fmt.Errorf("%w: negative interval %d", ErrInvalidArgument, card.Interval)
	case card.Repetitions < 0:
		return fmt.Errorf("%w: negative repetitions %d", ErrInvalidArgument, card.Repetitions)
	}
	return nil
}

func checkNow(now time.Time) error {
	if now.IsZero() || now.UnixMilli() < 0 {
		return fmt.Errorf("%w: timestamp %v", ErrInvalidArgument, now)
	}
	return nil
}
