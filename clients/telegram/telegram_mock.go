package telegram

import (
	"context"

	"github.com/stretchr/testify/mock"

	"netboxbot/clients"
)

// MockTelegramClient implements the clients.TelegramClient interface for testing
type MockTelegramClient struct {
	mock.Mock
}

// ReceiveMessages mocks the inbound message stream
func (m *MockTelegramClient) ReceiveMessages(ctx context.Context) <-chan clients.IncomingMessage {
	args := m.Called(ctx)
	return args.Get(0).(<-chan clients.IncomingMessage)
}

// SendReply mocks sending a reply
func (m *MockTelegramClient) SendReply(ctx context.Context, msg clients.OutgoingMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
