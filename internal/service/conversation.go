package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// ConversationService drives the multi-step dialogues: registration, topic creation
// and support tickets. Each call consumes one user event and persists the resulting state.
type ConversationService struct {
	states  ConversationStateStore
	users   UserRepository
	cards   CardRepository
	topics  TopicRepository
	tickets TicketRepository
	words   WordProvider
	logger  *zap.Logger
	now     func() time.Time
}

func NewConversationService(
	states ConversationStateStore,
	users UserRepository,
	cards CardRepository,
	topics TopicRepository,
	tickets TicketRepository,
	words WordProvider,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		states:  states,
		users:   users,
		cards:   cards,
		topics:  topics,
		tickets: tickets,
		words:   words,
		logger:  logger,
		now:     time.Now,
	}
}

// stepResult is the outcome of one step: the flow to persist (nil ends the flow)
// and the replies to send.
type stepResult struct {
	next    entities.Flow
	replies []entities.Reply
}

func stay(flow entities.Flow, replies ...entities.Reply) stepResult {
	return stepResult{next: flow, replies: replies}
}

func done(replies ...entities.Reply) stepResult {
	return stepResult{replies: replies}
}

// StartRegistration begins registration from the language step.
func (s *ConversationService) StartRegistration(ctx context.Context, userID int64) ([]entities.Reply, error) {
	flow := entities.NewRegistrationFlow()
	return s.enter(ctx, userID, flow, registrationPrompt(flow))
}

// StartAddTopic begins the topic dialogue.
func (s *ConversationService) StartAddTopic(ctx context.Context, userID int64) ([]entities.Reply, error) {
	flow := entities.NewAddTopicFlow()
	return s.enter(ctx, userID, flow, addTopicPrompt(flow))
}

// StartSupportTicket begins a support request.
func (s *ConversationService) StartSupportTicket(ctx context.Context, userID int64) ([]entities.Reply, error) {
	flow := entities.NewSupportTicketFlow()
	return s.enter(ctx, userID, flow, supportPrompt(flow))
}

// Cancel drops whatever flow the user is in.
func (s *ConversationService) Cancel(ctx context.Context, userID int64) ([]entities.Reply, error) {
	if err := s.states.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("cancel flow: %w", err)
	}
	return []entities.Reply{entities.NewReply(msgCancelled).WithMainMenu()}, nil
}

func (s *ConversationService) enter(
	ctx context.Context, userID int64, flow entities.Flow, prompt entities.Reply,
) ([]entities.Reply, error) {
	if err := s.states.Save(ctx, entities.NewConversationState(userID, flow, s.now())); err != nil {
		return nil, fmt.Errorf("start %s: %w", flow.Kind(), err)
	}
	return []entities.Reply{prompt}, nil
}

// Advance feeds one event into the flow held by state. A step that fails clears the
// state so the user is never stuck in a broken dialogue.
func (s *ConversationService) Advance(
	ctx context.Context,
	user *entities.User,
	state *entities.ConversationState,
	ev Event,
) ([]entities.Reply, error) {
	var (
		res stepResult
		err error
	)

	switch flow := state.Current().(type) {
	case *entities.RegistrationFlow:
		res, err = s.stepRegistration(ctx, user, flow, ev)
	case *entities.AddTopicFlow:
		res, err = s.stepAddTopic(ctx, user, flow, ev)
	case *entities.SupportTicketFlow:
		res, err = s.stepSupportTicket(ctx, user, flow, ev)
	default:
		return nil, fmt.Errorf("advance %s: %w", state.Kind(), entities.ErrUnknownFlow)
	}

	if err != nil {
		if clearErr := s.states.Clear(ctx, user.ID); clearErr != nil {
			s.logger.Error("failed to clear state after step error",
				zap.Int64("user_id", user.ID),
				zap.Error(clearErr),
			)
		}
		return nil, fmt.Errorf("advance %s: %w", state.Kind(), err)
	}

	if res.next == nil {
		if err := s.states.Clear(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("clear state: %w", err)
		}
		return res.replies, nil
	}

	if err := s.states.Save(ctx, entities.NewConversationState(user.ID, res.next, s.now())); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return res.replies, nil
}
