package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// Main menu button labels. Pressing one sends its label as text.
const (
	menuStudy    = "📚 Study"
	menuAddTopic = "➕ Add topic"
	menuStats    = "📊 Stats"
	menuTopics   = "🗂 Topics"
	menuSupport  = "🆘 Support"
	menuHelp     = "❓ Help"
)

// menuCommands maps main menu labels to the commands they stand for.
var menuCommands = map[string]string{
	menuStudy:    cmdStudy,
	menuAddTopic: cmdAddTopic,
	menuStats:    cmdStats,
	menuTopics:   cmdTopics,
	menuSupport:  cmdSupport,
	menuHelp:     cmdHelp,
}

// buildMainMenu builds the persistent reply keyboard.
func buildMainMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuStudy),
			tgbotapi.NewKeyboardButton(menuAddTopic),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuStats),
			tgbotapi.NewKeyboardButton(menuTopics),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuSupport),
			tgbotapi.NewKeyboardButton(menuHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// buildInlineKeyboard converts button rows into an inline keyboard.
func buildInlineKeyboard(rows [][]entities.Button) (tgbotapi.InlineKeyboardMarkup, error) {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			data, err := encodeAction(b.Action)
			if err != nil {
				return tgbotapi.InlineKeyboardMarkup{}, err
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, data))
		}
		keyboard = append(keyboard, buttons)
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard}, nil
}

// emptyInlineKeyboard removes the buttons of an already sent message.
func emptyInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
