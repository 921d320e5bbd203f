package jobs

import (
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/repository"
	"github.com/vytor/lumina/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	generationPool *worker.Pool
	generator      worker.CardGenerator
	flashcardRepo  repository.FlashcardRepository
	clock          flashcard.Clock
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	generationPool *worker.Pool,
	generator worker.CardGenerator,
	flashcardRepo repository.FlashcardRepository,
	clock flashcard.Clock,
) JobQueue {
	return &WorkerQueue{
		generationPool: generationPool,
		generator:      generator,
		flashcardRepo:  flashcardRepo,
		clock:          clock,
	}
}

func (q *WorkerQueue) EnqueueCardGeneration(req CardGeneration) error {
	return q.generationPool.Submit(&worker.GenerateFlashcardsJob{
		Generator: q.generator,
		Cards:     q.flashcardRepo,
		Profile:   req.Profile,
		Subject:   req.Subject,
		Session:   req.Session,
		Clock:     q.clock,
	})
}
