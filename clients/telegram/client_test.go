package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netboxbot/clients"
)

// fakeBot is an in-memory stand-in for *tgbotapi.BotAPI
type fakeBot struct {
	mu           sync.Mutex
	updates      chan tgbotapi.Update
	updateConfig tgbotapi.UpdateConfig
	sent         []tgbotapi.Chattable
	sendErr      error
	stopCalls    int
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 10)}
}

func (b *fakeBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	b.updateConfig = config
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopCalls++
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, b.sendErr
}

func textUpdate(chatID int64, messageID int, username, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: messageID,
			From:      &tgbotapi.User{UserName: username},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
		},
	}
}

func receive(t *testing.T, ch <-chan clients.IncomingMessage) clients.IncomingMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return clients.IncomingMessage{}
	}
}

func TestTelegramClient_ReceiveMessages(t *testing.T) {
	bot := newFakeBot()
	client := newTelegramClient(bot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Updates without a message or without text are skipped
	bot.updates <- tgbotapi.Update{UpdateID: 1}
	bot.updates <- textUpdate(100, 1, "alice", "")
	bot.updates <- textUpdate(100, 2, "alice", "/search_racks r1")

	messages := client.ReceiveMessages(ctx)
	assert.Equal(t, longPollTimeoutSeconds, bot.updateConfig.Timeout)

	msg := receive(t, messages)
	assert.Equal(t, clients.IncomingMessage{
		ChatID:    100,
		MessageID: 2,
		Username:  "alice",
		Text:      "/search_racks r1",
	}, msg)
}

func TestTelegramClient_ReceiveMessages_StopsOnCancel(t *testing.T) {
	bot := newFakeBot()
	client := newTelegramClient(bot)

	ctx, cancel := context.WithCancel(context.Background())
	messages := client.ReceiveMessages(ctx)
	cancel()

	select {
	case _, ok := <-messages:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed after cancel")
	}

	bot.mu.Lock()
	defer bot.mu.Unlock()
	assert.Equal(t, 1, bot.stopCalls)
}

func TestTelegramClient_ReceiveMessages_UpstreamClosed(t *testing.T) {
	bot := newFakeBot()
	client := newTelegramClient(bot)

	messages := client.ReceiveMessages(context.Background())
	close(bot.updates)

	select {
	case _, ok := <-messages:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed after upstream closed")
	}
}

func TestTelegramClient_SendReply(t *testing.T) {
	tests := []struct {
		name              string
		msg               clients.OutgoingMessage
		expectedParseMode string
	}{
		{
			name:              "Markdown reply",
			msg:               clients.OutgoingMessage{ChatID: 100, ReplyToMessageID: 7, Text: "*bold*", Markdown: true},
			expectedParseMode: tgbotapi.ModeMarkdownV2,
		},
		{
			name:              "Plain reply",
			msg:               clients.OutgoingMessage{ChatID: 100, ReplyToMessageID: 8, Text: "Nothing found."},
			expectedParseMode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newFakeBot()
			client := newTelegramClient(bot)

			err := client.SendReply(context.Background(), tt.msg)
			require.NoError(t, err)

			require.Len(t, bot.sent, 1)
			sent, ok := bot.sent[0].(tgbotapi.MessageConfig)
			require.True(t, ok)
			assert.Equal(t, tt.msg.ChatID, sent.ChatID)
			assert.Equal(t, tt.msg.ReplyToMessageID, sent.ReplyToMessageID)
			assert.Equal(t, tt.msg.Text, sent.Text)
			assert.Equal(t, tt.expectedParseMode, sent.ParseMode)
		})
	}
}

func TestTelegramClient_SendReply_Error(t *testing.T) {
	bot := newFakeBot()
	bot.sendErr = errors.New("Bad Request: can't parse entities")
	client := newTelegramClient(bot)

	err := client.SendReply(context.Background(), clients.OutgoingMessage{ChatID: 100, Text: "x"})
	assert.ErrorContains(t, err, "can't parse entities")
}

func TestTelegramClient_SendReply_CancelledContext(t *testing.T) {
	bot := newFakeBot()
	client := newTelegramClient(bot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SendReply(ctx, clients.OutgoingMessage{ChatID: 100, Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.sent)
}
