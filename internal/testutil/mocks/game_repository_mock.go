package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/gameshelf/internal/models"
)

// MockGameRepository is a mock implementation of repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) GetAll(ctx context.Context, userID string) ([]models.Game, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockGameRepository) Create(ctx context.Context, game models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) CreateBatch(ctx context.Context, games []models.Game) error {
	args := m.Called(ctx, games)
	return args.Error(0)
}

func (m *MockGameRepository) Update(ctx context.Context, game models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepository) AddPlayLog(ctx context.Context, gameID string, log models.PlayLog) error {
	args := m.Called(ctx, gameID, log)
	return args.Error(0)
}

func (m *MockGameRepository) DeletePlayLog(ctx context.Context, gameID, logID string) error {
	args := m.Called(ctx, gameID, logID)
	return args.Error(0)
}
