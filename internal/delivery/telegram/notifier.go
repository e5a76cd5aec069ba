package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// Sender sends a single message.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier delivers service-initiated messages such as reminders and broadcasts.
type Notifier struct {
	bot Sender
}

func NewNotifier(bot Sender) *Notifier {
	return &Notifier{bot: bot}
}

func (n *Notifier) Notify(ctx context.Context, chatID int64, reply entities.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := renderReply(chatID, reply)
	if err != nil {
		return err
	}
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}
