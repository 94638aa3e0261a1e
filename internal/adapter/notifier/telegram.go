package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/argosbackup/argos/internal/config"
)

type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	hostname string
}

func NewTelegram(cfg *config.TelegramConfig, hostname string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	var chatID int64
	if _, err := fmt.Sscanf(cfg.ChatID, "%d", &chatID); err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", cfg.ChatID, err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, hostname: hostname}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, message string) error {
	text := fmt.Sprintf("backup failure on %s\n\n%s", t.hostname, Truncate(message))
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}
