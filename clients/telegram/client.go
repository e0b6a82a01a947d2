package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"netboxbot/clients"
	"netboxbot/core/log"
)

const longPollTimeoutSeconds = 60

// botAPI is the subset of *tgbotapi.BotAPI used by the client
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramClient implements the clients.TelegramClient interface on top of
// the Bot API long-polling loop
type TelegramClient struct {
	bot      botAPI
	stopOnce sync.Once
}

var _ clients.TelegramClient = (*TelegramClient)(nil)

// NewTelegramClient authorizes the bot token against the Bot API
func NewTelegramClient(botToken string, debug bool) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize Telegram bot: %w", err)
	}
	bot.Debug = debug

	log.Info("🔑 Authorized on Telegram", "username", bot.Self.UserName)
	return newTelegramClient(bot), nil
}

func newTelegramClient(bot botAPI) *TelegramClient {
	return &TelegramClient{bot: bot}
}

// ReceiveMessages long-polls for updates and emits text messages until ctx is
// cancelled or the update stream ends. The returned channel is closed on exit.
func (c *TelegramClient) ReceiveMessages(ctx context.Context) <-chan clients.IncomingMessage {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = longPollTimeoutSeconds
	updates := c.bot.GetUpdatesChan(updateConfig)

	out := make(chan clients.IncomingMessage)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				c.stop()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				msg, ok := toIncomingMessage(update)
				if !ok {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					c.stop()
					return
				}
			}
		}
	}()
	return out
}

// SendReply sends msg as a reply to the message it answers
func (c *TelegramClient) SendReply(ctx context.Context, msg clients.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	config.ReplyToMessageID = msg.ReplyToMessageID
	if msg.Markdown {
		config.ParseMode = tgbotapi.ModeMarkdownV2
	}

	if _, err := c.bot.Send(config); err != nil {
		return fmt.Errorf("failed to send Telegram message to chat %d: %w", msg.ChatID, err)
	}
	return nil
}

func (c *TelegramClient) stop() {
	c.stopOnce.Do(c.bot.StopReceivingUpdates)
}

func toIncomingMessage(update tgbotapi.Update) (clients.IncomingMessage, bool) {
	message := update.Message
	if message == nil || message.Chat == nil || message.Text == "" {
		return clients.IncomingMessage{}, false
	}

	incoming := clients.IncomingMessage{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}
	if message.From != nil {
		incoming.Username = message.From.UserName
	}
	return incoming, true
}
