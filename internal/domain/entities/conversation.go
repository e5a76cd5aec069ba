package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// FlowKind identifies which multi-step dialogue a user is in.
type FlowKind string

const (
	FlowIdle          FlowKind = "idle"
	FlowRegistration  FlowKind = "registration"
	FlowAddTopic      FlowKind = "add_topic"
	FlowReview        FlowKind = "review"
	FlowSupportTicket FlowKind = "support_ticket"
)

var ErrUnknownFlow = errors.New("unknown conversation flow")

// Flow is one variant of the conversation state. The set of variants is closed:
// RegistrationFlow, AddTopicFlow, ReviewFlow and SupportTicketFlow.
type Flow interface {
	Kind() FlowKind
	isFlow()
}

// ConversationState is the persisted per-user dialogue state holding exactly one flow.
// A missing state means the user is idle.
type ConversationState struct {
	UserID    int64
	Flow      Flow
	UpdatedAt time.Time
}

// NewConversationState creates a fresh state for a flow that is just starting.
func NewConversationState(userID int64, flow Flow, now time.Time) *ConversationState {
	return &ConversationState{UserID: userID, Flow: flow, UpdatedAt: now}
}

// Current returns the held flow, nil when the user is idle. Safe on a nil state.
func (s *ConversationState) Current() Flow {
	if s == nil {
		return nil
	}
	return s.Flow
}

// Kind returns the kind of the held flow, FlowIdle for a nil state.
func (s *ConversationState) Kind() FlowKind {
	if s == nil || s.Flow == nil {
		return FlowIdle
	}
	return s.Flow.Kind()
}

type stateEnvelope struct {
	UserID    int64           `json:"user_id"`
	Kind      FlowKind        `json:"kind"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s ConversationState) MarshalJSON() ([]byte, error) {
	if s.Flow == nil {
		return nil, fmt.Errorf("marshal conversation state: %w", ErrUnknownFlow)
	}
	data, err := json.Marshal(s.Flow)
	if err != nil {
		return nil, err
	}
	return json.Marshal(stateEnvelope{
		UserID:    s.UserID,
		Kind:      s.Flow.Kind(),
		Data:      data,
		UpdatedAt: s.UpdatedAt,
	})
}

func (s *ConversationState) UnmarshalJSON(b []byte) error {
	var env stateEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	var flow Flow
	switch env.Kind {
	case FlowRegistration:
		flow = &RegistrationFlow{}
	case FlowAddTopic:
		flow = &AddTopicFlow{}
	case FlowReview:
		flow = &ReviewFlow{}
	case FlowSupportTicket:
		flow = &SupportTicketFlow{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFlow, env.Kind)
	}

	if err := json.Unmarshal(env.Data, flow); err != nil {
		return fmt.Errorf("decode %s flow: %w", env.Kind, err)
	}

	s.UserID = env.UserID
	s.Flow = flow
	s.UpdatedAt = env.UpdatedAt
	return nil
}

// RegistrationStep is a step of the registration dialogue.
type RegistrationStep string

const (
	RegAskLanguage RegistrationStep = "ask_language"
	RegAskName     RegistrationStep = "ask_name"
	RegAskEmail    RegistrationStep = "ask_email"
	RegConfirm     RegistrationStep = "confirm"
)

// RegistrationFlow collects the profile of a new user.
type RegistrationFlow struct {
	Step     RegistrationStep `json:"step"`
	Language string           `json:"language,omitempty"`
	FullName string           `json:"full_name,omitempty"`
	Email    string           `json:"email,omitempty"`
}

// NewRegistrationFlow starts registration from the first step.
func NewRegistrationFlow() *RegistrationFlow {
	return &RegistrationFlow{Step: RegAskLanguage}
}

func (*RegistrationFlow) Kind() FlowKind { return FlowRegistration }
func (*RegistrationFlow) isFlow()        {}

// AddTopicStep is a step of the topic generation dialogue.
type AddTopicStep string

const (
	TopicAskTopic               AddTopicStep = "ask_topic"
	TopicAskSourceLanguage      AddTopicStep = "ask_source_language"
	TopicAskTargetLanguage      AddTopicStep = "ask_target_language"
	TopicAskDescriptionLanguage AddTopicStep = "ask_description_language"
	TopicAskWordLevel           AddTopicStep = "ask_word_level"
	TopicAskWordCount           AddTopicStep = "ask_word_count"
	TopicConfirm                AddTopicStep = "confirm"
)

// AddTopicSteps lists the steps in dialogue order.
var AddTopicSteps = []AddTopicStep{
	TopicAskTopic,
	TopicAskSourceLanguage,
	TopicAskTargetLanguage,
	TopicAskDescriptionLanguage,
	TopicAskWordLevel,
	TopicAskWordCount,
	TopicConfirm,
}

// Index returns the position of the step in AddTopicSteps, -1 when unknown.
func (s AddTopicStep) Index() int {
	return slices.Index(AddTopicSteps, s)
}

// AddTopicFlow collects the parameters of an AI vocabulary request.
type AddTopicFlow struct {
	Step                AddTopicStep `json:"step"`
	Topic               string       `json:"topic,omitempty"`
	SourceLanguage      string       `json:"source_language,omitempty"`
	TargetLanguage      string       `json:"target_language,omitempty"`
	DescriptionLanguage string       `json:"description_language,omitempty"`
	WordLevel           string       `json:"word_level,omitempty"`
	WordCount           int          `json:"word_count,omitempty"`
}

// NewAddTopicFlow starts the topic dialogue from the first step.
func NewAddTopicFlow() *AddTopicFlow {
	return &AddTopicFlow{Step: TopicAskTopic}
}

func (*AddTopicFlow) Kind() FlowKind { return FlowAddTopic }
func (*AddTopicFlow) isFlow()        {}

// Request converts the collected answers into a provider request.
func (f *AddTopicFlow) Request() WordRequest {
	return WordRequest{
		Topic:               f.Topic,
		SourceLanguage:      f.SourceLanguage,
		TargetLanguage:      f.TargetLanguage,
		Count:               f.WordCount,
		WordLevel:           f.WordLevel,
		DescriptionLanguage: f.DescriptionLanguage,
	}
}

// ReviewFlow holds the card currently presented in a review session.
type ReviewFlow struct {
	SessionID string `json:"session_id"`
	Card      Card   `json:"card"`
}

func (*ReviewFlow) Kind() FlowKind { return FlowReview }
func (*ReviewFlow) isFlow()        {}

// SupportTicketStep is a step of the support dialogue.
type SupportTicketStep string

const (
	TicketAskSubject SupportTicketStep = "ask_subject"
	TicketAskMessage SupportTicketStep = "ask_message"
	TicketConfirm    SupportTicketStep = "confirm"
)

// SupportTicketFlow collects a support request.
type SupportTicketFlow struct {
	Step    SupportTicketStep `json:"step"`
	Subject string            `json:"subject,omitempty"`
	Message string            `json:"message,omitempty"`
}

// NewSupportTicketFlow starts the support dialogue from the first step.
func NewSupportTicketFlow() *SupportTicketFlow {
	return &SupportTicketFlow{Step: TicketAskSubject}
}

func (*SupportTicketFlow) Kind() FlowKind { return FlowSupportTicket }
func (*SupportTicketFlow) isFlow()        {}
