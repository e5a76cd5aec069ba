package entities

// ActionType is the closed vocabulary of button actions.
type ActionType string

const (
	// Registration.
	ActionSelectLanguage      ActionType = "select_language"
	ActionConfirmRegistration ActionType = "confirm_registration"
	ActionEditRegistration    ActionType = "edit_registration"

	// Add topic.
	ActionSetTopic        ActionType = "set_topic"
	ActionSetSourceLang   ActionType = "set_source_lang"
	ActionSetTargetLang   ActionType = "set_target_lang"
	ActionSetDescLang     ActionType = "set_desc_lang"
	ActionSetWordLevel    ActionType = "set_word_level"
	ActionSetWordCount    ActionType = "set_word_count"
	ActionConfirmAddTopic ActionType = "confirm_add_topic"
	ActionCancelAddTopic  ActionType = "cancel_add_topic"
	ActionBack            ActionType = "back"

	// Support ticket.
	ActionConfirmTicket ActionType = "confirm_ticket"
	ActionCancelTicket  ActionType = "cancel_ticket"

	// Review.
	ActionStartReview     ActionType = "start_review"
	ActionShowAnswer      ActionType = "review_show"
	ActionReviewCorrect   ActionType = "review_correct"
	ActionReviewIncorrect ActionType = "review_incorrect"
	ActionReviewNext      ActionType = "review_next"
	ActionReviewEnd       ActionType = "review_end"

	// Menu.
	ActionAddTopic ActionType = "add_topic"
	ActionSupport  ActionType = "support"
	ActionStats    ActionType = "stats"
)

// actionArgs tells for every known action whether it carries an argument.
var actionArgs = map[ActionType]bool{
	ActionSelectLanguage:      true,
	ActionConfirmRegistration: false,
	ActionEditRegistration:    false,
	ActionSetTopic:            true,
	ActionSetSourceLang:       true,
	ActionSetTargetLang:       true,
	ActionSetDescLang:         true,
	ActionSetWordLevel:        true,
	ActionSetWordCount:        true,
	ActionConfirmAddTopic:     false,
	ActionCancelAddTopic:      false,
	ActionBack:                true,
	ActionConfirmTicket:       false,
	ActionCancelTicket:        false,
	ActionStartReview:         false,
	ActionShowAnswer:          true,
	ActionReviewCorrect:       true,
	ActionReviewIncorrect:     true,
	ActionReviewNext:          false,
	ActionReviewEnd:           false,
	ActionAddTopic:            false,
	ActionSupport:             false,
	ActionStats:               false,
}

// Known reports whether t belongs to the action vocabulary.
func (t ActionType) Known() bool {
	_, ok := actionArgs[t]
	return ok
}

// HasArg reports whether actions of this type carry an argument.
func (t ActionType) HasArg() bool {
	return actionArgs[t]
}

// Action is a parsed button press.
type Action struct {
	Type ActionType
	Arg  string // card id, language code, step name, etc.
}

// NewAction builds an action with an optional argument.
func NewAction(t ActionType, arg ...string) Action {
	a := Action{Type: t}
	if len(arg) > 0 {
		a.Arg = arg[0]
	}
	return a
}
