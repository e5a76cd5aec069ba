package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// newPlainMessage creates a message without parse mode, so user-provided text is sent as is.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	return msg
}
