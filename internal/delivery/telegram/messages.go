package telegram

import (
	"fmt"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

const (
	msgInternalError  = "⚠️ Something went wrong. Please try again later."
	msgUnknownCommand = "I don't know this command. Send /help to see what I can do."
	msgExpiredButton  = "This button is no longer active."
	msgWelcomeBack    = "👋 Welcome back, %s!\n\nWhat would you like to study today?"
)

const msgHelp = `I help you learn words with spaced repetition.

Cards start in box 1 and move one box up with every correct answer:
box 1 every day, box 2 every 2 days, box 3 every 4 days, box 4 every 8 days, box 5 every 16 days.
A wrong answer sends the card back to box 1.

/study - review the cards that are due
/addtopic - generate cards for a topic
/add word - translation - add one card
/stats - your progress
/topics - your topics
/reminders 09:00 20:30 - daily reminders (/reminders off to disable)
/timezone Europe/Berlin - your timezone for reminders
/support - contact support
/cancel - cancel the current action`

func welcomeReplies(user *entities.User) []entities.Reply {
	text := fmt.Sprintf(msgWelcomeBack, user.DisplayName())
	return []entities.Reply{entities.NewReply(text).WithMainMenu()}
}

func helpReplies() []entities.Reply {
	return []entities.Reply{entities.NewReply(msgHelp).WithMainMenu()}
}
