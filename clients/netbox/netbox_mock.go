package netbox

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netboxbot/models"
)

// MockNetBoxClient implements the clients.NetBoxClient interface for testing
type MockNetBoxClient struct {
	mock.Mock
}

// Search mocks a NetBox search request
func (m *MockNetBoxClient) Search(ctx context.Context, endpoint, query string) ([]*models.Record, error) {
	args := m.Called(ctx, endpoint, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Record), args.Error(1)
}

// CheckConnection mocks the NetBox connectivity check
func (m *MockNetBoxClient) CheckConnection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
