package service

import (
	"strings"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// Event is one user turn: typed text, a command or a pressed button.
type Event struct {
	Text    string
	Command string // set by the dispatcher for slash commands and menu buttons
	Action  *entities.Action
}

const cancelCommand = "cancel"

// TextEvent wraps typed text.
func TextEvent(text string) Event {
	return Event{Text: text}
}

// CommandEvent wraps a command typed as "/name" or sent by a menu button.
func CommandEvent(name string) Event {
	return Event{Command: strings.ToLower(name)}
}

// ActionEvent wraps a pressed button.
func ActionEvent(a entities.Action) Event {
	return Event{Action: &a}
}

// IsCommand reports whether the event is a command rather than an answer.
func (e Event) IsCommand() bool {
	if e.Action != nil {
		return false
	}
	return e.Command != "" || strings.HasPrefix(strings.TrimSpace(e.Text), "/")
}

// IsCancel reports whether the user asked to abort the current flow.
func (e Event) IsCancel() bool {
	if e.Action != nil {
		return e.Action.Type == entities.ActionCancelAddTopic || e.Action.Type == entities.ActionCancelTicket
	}
	if e.Command != "" {
		return e.Command == cancelCommand
	}
	// Plain "cancel" is a valid name or subject, only the command aborts.
	return strings.ToLower(strings.TrimSpace(e.Text)) == "/"+cancelCommand
}

// input returns the value the event carries for a step that accepts the set action accept.
// Typed text is accepted by every step; a button is accepted only if its type matches.
func (e Event) input(accept entities.ActionType) (string, bool) {
	if e.Action != nil {
		if accept != "" && e.Action.Type == accept {
			return e.Action.Arg, true
		}
		return "", false
	}
	return strings.TrimSpace(e.Text), true
}

type confirmation int

const (
	confirmUnknown confirmation = iota
	confirmYes
	confirmNo
)

var (
	yesWords = []string{"yes", "y", "ok", "confirm", "да"}
	noWords  = []string{"no", "n", "edit", "cancel", "нет"}
)

// confirm reads a yes/no answer from a button or from text.
func (e Event) confirm(yes, no entities.ActionType) confirmation {
	if e.Action != nil {
		switch e.Action.Type {
		case yes:
			return confirmYes
		case no:
			return confirmNo
		}
		return confirmUnknown
	}

	text := strings.ToLower(strings.TrimSpace(e.Text))
	for _, w := range yesWords {
		if text == w {
			return confirmYes
		}
	}
	for _, w := range noWords {
		if text == w {
			return confirmNo
		}
	}
	return confirmUnknown
}
