package jobs

import "github.com/vytor/lumina/internal/models"

// CardGeneration identifies the study session whose notes become flashcards.
type CardGeneration struct {
	Profile models.Profile
	Subject models.Subject
	Session models.StudySession
}

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueCardGeneration(req CardGeneration) error
}
