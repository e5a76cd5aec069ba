package entities

// Button is one inline keyboard button.
type Button struct {
	Text   string
	Action Action
}

// Reply is one outgoing message planned by a service. The delivery layer renders it.
type Reply struct {
	Text     string
	Buttons  [][]Button // inline keyboard rows
	MainMenu bool       // attach the persistent main menu keyboard
}

// NewReply creates a plain text reply.
func NewReply(text string) Reply {
	return Reply{Text: text}
}

// WithButtons appends inline keyboard rows.
func (r Reply) WithButtons(rows ...[]Button) Reply {
	r.Buttons = append(r.Buttons, rows...)
	return r
}

// WithMainMenu shows the main menu keyboard with the reply.
func (r Reply) WithMainMenu() Reply {
	r.MainMenu = true
	return r
}

// Row is a convenience constructor for a keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}

// NewButton creates a button that triggers the given action.
func NewButton(text string, t ActionType, arg ...string) Button {
	return Button{Text: text, Action: NewAction(t, arg...)}
}
