package usecases

import (
	"context"

	"netboxbot/models"
)

// SearchUseCaseInterface defines the interface for chat command routing
type SearchUseCaseInterface interface {
	HandleMessage(ctx context.Context, text string) models.Reply
}
