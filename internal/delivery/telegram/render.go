package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// renderReply turns a planned reply into a Telegram message. Telegram accepts a single
// reply_markup, so inline buttons win over the main menu.
func renderReply(chatID int64, r entities.Reply) (tgbotapi.MessageConfig, error) {
	msg := newPlainMessage(chatID, r.Text)

	switch {
	case len(r.Buttons) > 0:
		kb, err := buildInlineKeyboard(r.Buttons)
		if err != nil {
			return tgbotapi.MessageConfig{}, fmt.Errorf("render keyboard: %w", err)
		}
		msg.ReplyMarkup = kb
	case r.MainMenu:
		msg.ReplyMarkup = buildMainMenu()
	}

	return msg, nil
}
