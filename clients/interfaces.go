package clients

import (
	"context"

	"netboxbot/models"
)

// NetBoxClient performs read-only queries against the NetBox REST API
type NetBoxClient interface {
	Search(ctx context.Context, endpoint, query string) ([]*models.Record, error)
	CheckConnection(ctx context.Context) error
}

// TelegramClient receives chat messages and delivers replies
type TelegramClient interface {
	// ReceiveMessages streams inbound text messages until ctx is cancelled
	ReceiveMessages(ctx context.Context) <-chan IncomingMessage
	SendReply(ctx context.Context, msg OutgoingMessage) error
}
