package search

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netboxbot/models"
)

// MockSearchUseCase is a mock implementation of the SearchUseCaseInterface
type MockSearchUseCase struct {
	mock.Mock
}

func (m *MockSearchUseCase) HandleMessage(ctx context.Context, text string) models.Reply {
	args := m.Called(ctx, text)
	return args.Get(0).(models.Reply)
}
