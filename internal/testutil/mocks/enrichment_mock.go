package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/gameshelf/internal/models"
)

// MockMetadataClient is a mock implementation of enrichment.MetadataClient
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) Lookup(ctx context.Context, name string) (*models.Metadata, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Metadata), args.Error(1)
}

// MockDealsClient is a mock implementation of enrichment.DealsClient
type MockDealsClient struct {
	mock.Mock
}

func (m *MockDealsClient) Search(ctx context.Context, title string) ([]models.Deal, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deal), args.Error(1)
}
