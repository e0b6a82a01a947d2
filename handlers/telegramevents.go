package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gammazero/workerpool"

	"netboxbot/appctx"
	"netboxbot/clients"
	"netboxbot/core"
	"netboxbot/core/log"
	"netboxbot/middleware"
	"netboxbot/usecases"
)

const (
	defaultWorkerPoolSize = 10
	replyTimeout          = 30 * time.Second
)

type TelegramEventsHandler struct {
	telegramClient  clients.TelegramClient
	netboxClient    clients.NetBoxClient
	searchUseCase   usecases.SearchUseCaseInterface
	alertMiddleware *middleware.ErrorAlertMiddleware
	workerPoolSize  int
}

func NewTelegramEventsHandler(
	telegramClient clients.TelegramClient,
	netboxClient clients.NetBoxClient,
	searchUseCase usecases.SearchUseCaseInterface,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	workerPoolSize int,
) *TelegramEventsHandler {
	if workerPoolSize < 1 {
		workerPoolSize = defaultWorkerPoolSize
	}

	return &TelegramEventsHandler{
		telegramClient:  telegramClient,
		netboxClient:    netboxClient,
		searchUseCase:   searchUseCase,
		alertMiddleware: alertMiddleware,
		workerPoolSize:  workerPoolSize,
	}
}

// StartBot checks NetBox connectivity once and then serves Telegram messages
// until ctx is cancelled. If NetBox cannot be reached the receive loop is never
// started and an error wrapping core.ErrNetBoxUnreachable is returned.
func (h *TelegramEventsHandler) StartBot(ctx context.Context) error {
	if err := h.netboxClient.CheckConnection(ctx); err != nil {
		log.Error("❌ Could not connect to NetBox API, Telegram bot not started", "error", err)
		return fmt.Errorf("%w: %w", core.ErrNetBoxUnreachable, err)
	}

	log.Info("🤖 Telegram bot is now running and listening for messages", "workers", h.workerPoolSize)

	handleMessage := h.alertMiddleware.WrapMessageHandler(h.handleMessageEvent)
	pool := workerpool.New(h.workerPoolSize)
	for msg := range h.telegramClient.ReceiveMessages(ctx) {
		pool.Submit(func() {
			handleMessage(ctx, msg)
		})
	}
	pool.StopWait()

	log.Info("🛑 Telegram bot stopped")
	return nil
}

// handleMessageEvent routes one inbound message and sends the reply
func (h *TelegramEventsHandler) handleMessageEvent(ctx context.Context, msg clients.IncomingMessage) error {
	requestID := core.NewID("msg")
	ctx = appctx.SetRequestID(ctx, requestID)

	log.Info("📨 Telegram message received",
		"request_id", requestID, "chat_id", msg.ChatID, "from", msg.Username)

	reply := h.searchUseCase.HandleMessage(ctx, msg.Text)

	// Replies still go out while the bot drains its queue on shutdown
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), replyTimeout)
	defer cancel()

	outgoing := clients.OutgoingMessage{
		ChatID:           msg.ChatID,
		ReplyToMessageID: msg.MessageID,
		Text:             reply.Text,
		Markdown:         reply.Markdown,
	}
	err := h.telegramClient.SendReply(sendCtx, outgoing)
	if err != nil && outgoing.Markdown {
		log.Warn("⚠️ Markdown reply rejected, resending as plain text",
			"request_id", requestID, "chat_id", msg.ChatID, "error", err)
		outgoing.Markdown = false
		err = h.telegramClient.SendReply(sendCtx, outgoing)
	}
	if err != nil {
		return fmt.Errorf("failed to reply to message %d (request %s): %w", msg.MessageID, requestID, err)
	}

	log.Info("✅ Reply sent", "request_id", requestID, "chat_id", msg.ChatID)
	return nil
}
