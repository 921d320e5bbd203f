package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/lumina/internal/jobs"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueCardGeneration(req jobs.CardGeneration) error {
	args := m.Called(req)
	return args.Error(0)
}
