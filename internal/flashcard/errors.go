package flashcard

import "errors"

// Sentinel errors for the review engine. Check with errors.Is.
var (
	ErrInvalidArgument = errors.New("flashcard: invalid argument")
	ErrInvalidState    = errors.New("flashcard: invalid state")
	ErrPersistence     = errors.New("flashcard: persistence failure")
)
