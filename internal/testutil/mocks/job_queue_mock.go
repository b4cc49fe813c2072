package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueEnrichment(userID, gameID string) error {
	args := m.Called(userID, gameID)
	return args.Error(0)
}
