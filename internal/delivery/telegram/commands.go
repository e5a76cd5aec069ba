package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

const (
	cmdStart     = "start"
	cmdHelp      = "help"
	cmdStudy     = "study"
	cmdReview    = "review"
	cmdEnd       = "end"
	cmdAddTopic  = "addtopic"
	cmdAdd       = "add"
	cmdStats     = "stats"
	cmdTopics    = "topics"
	cmdSupport   = "support"
	cmdReminders = "reminders"
	cmdTimezone  = "timezone"
	cmdCancel    = "cancel"
)

// BotCommands is the command menu shown by Telegram clients.
func BotCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: cmdStart, Description: "Start the bot"},
		{Command: cmdStudy, Description: "Review due cards"},
		{Command: cmdAddTopic, Description: "Generate cards for a topic"},
		{Command: cmdAdd, Description: "Add a word (usage: /add word - translation)"},
		{Command: cmdStats, Description: "Show your progress"},
		{Command: cmdTopics, Description: "List your topics"},
		{Command: cmdReminders, Description: "Set reminder times (usage: /reminders 09:00 20:30)"},
		{Command: cmdTimezone, Description: "Set your timezone (usage: /timezone Europe/Berlin)"},
		{Command: cmdSupport, Description: "Contact support"},
		{Command: cmdCancel, Description: "Cancel the current action"},
		{Command: cmdHelp, Description: "Help"},
	}
}

// RegisterCommands publishes the command menu via setMyCommands.
func RegisterCommands(bot Bot) error {
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(BotCommands()...)); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

// parseCommand returns the command of a slash command or a main menu button.
func parseCommand(m *tgbotapi.Message) (command, args string, ok bool) {
	if m.IsCommand() {
		return strings.ToLower(m.Command()), strings.TrimSpace(m.CommandArguments()), true
	}
	if command, ok = menuCommands[strings.TrimSpace(m.Text)]; ok {
		return command, "", true
	}
	return "", "", false
}

func (h *Handler) runCommand(ctx context.Context, user *entities.User, command, args string) ([]entities.Reply, error) {
	switch command {
	case cmdStart:
		return welcomeReplies(user), nil
	case cmdHelp:
		return helpReplies(), nil
	case cmdStudy, cmdReview:
		return h.reviews.Start(ctx, user.ID)
	case cmdEnd:
		return h.reviews.End(ctx, user.ID)
	case cmdAddTopic:
		return h.conversations.StartAddTopic(ctx, user.ID)
	case cmdAdd:
		return h.cards.AddWord(ctx, user.ID, args)
	case cmdStats:
		return h.cards.Stats(ctx, user.ID)
	case cmdTopics:
		return h.cards.Topics(ctx, user.ID)
	case cmdSupport:
		return h.conversations.StartSupportTicket(ctx, user.ID)
	case cmdReminders:
		return h.users.SetReminderTimes(ctx, user, strings.Fields(args))
	case cmdTimezone:
		return h.users.SetTimezone(ctx, user, args)
	case cmdCancel:
		return h.conversations.Cancel(ctx, user.ID)
	default:
		return []entities.Reply{entities.NewReply(msgUnknownCommand)}, nil
	}
}
