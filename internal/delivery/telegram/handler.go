package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/service"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, info service.UserInfo) (*entities.User, bool, error)
	SetReminderTimes(ctx context.Context, user *entities.User, args []string) ([]entities.Reply, error)
	SetTimezone(ctx context.Context, user *entities.User, tz string) ([]entities.Reply, error)
}

type ConversationService interface {
	StartRegistration(ctx context.Context, userID int64) ([]entities.Reply, error)
	StartAddTopic(ctx context.Context, userID int64) ([]entities.Reply, error)
	StartSupportTicket(ctx context.Context, userID int64) ([]entities.Reply, error)
	Cancel(ctx context.Context, userID int64) ([]entities.Reply, error)
	Advance(ctx context.Context, user *entities.User, state *entities.ConversationState, ev service.Event) ([]entities.Reply, error)
}

type ReviewService interface {
	Start(ctx context.Context, userID int64) ([]entities.Reply, error)
	Continue(ctx context.Context, userID int64) ([]entities.Reply, error)
	ShowAnswer(ctx context.Context, userID int64, cardID string) ([]entities.Reply, error)
	Grade(ctx context.Context, userID int64, cardID string, isCorrect bool) ([]entities.Reply, error)
	AnswerText(ctx context.Context, userID int64, flow *entities.ReviewFlow, text string) ([]entities.Reply, error)
	End(ctx context.Context, userID int64) ([]entities.Reply, error)
	InProgress(ctx context.Context, userID int64) ([]entities.Reply, error)
}

type CardService interface {
	AddWord(ctx context.Context, userID int64, input string) ([]entities.Reply, error)
	Stats(ctx context.Context, userID int64) ([]entities.Reply, error)
	Topics(ctx context.Context, userID int64) ([]entities.Reply, error)
}

type StateStore interface {
	Get(ctx context.Context, userID int64) (*entities.ConversationState, error)
}

// Services groups the collaborators of the handler.
type Services struct {
	Users         UserService
	Conversations ConversationService
	Reviews       ReviewService
	Cards         CardService
	States        StateStore
}

type Handler struct {
	bot           Bot
	logger        *zap.Logger
	users         UserService
	conversations ConversationService
	reviews       ReviewService
	cards         CardService
	states        StateStore
}

func NewHandler(bot Bot, logger *zap.Logger, services Services) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		users:         services.Users,
		conversations: services.Conversations,
		reviews:       services.Reviews,
		cards:         services.Cards,
		states:        services.States,
	}
}

// Run receives updates by long polling until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one update. It never panics and reports failures to the user.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling update",
				zap.Int("update_id", update.UpdateID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)

	case update.Message != nil:
		h.logger.Debug("update received",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.String("text", update.Message.Text),
		)
		h.handleMessage(ctx, update.Message)

	default:
		h.logger.Debug("update without message and callback", zap.Int("update_id", update.UpdateID))
	}
}

func (h *Handler) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil || m.Chat == nil {
		return
	}

	_ = h.withErrorHandling("message", m.From.ID, func(ctx context.Context, chatID int64) error {
		user, state, err := h.loadUser(ctx, m.From, chatID)
		if err != nil {
			return err
		}

		replies, err := h.routeMessage(ctx, user, state, m)
		if err != nil {
			return err
		}

		h.sendReplies(chatID, replies)
		return nil
	})(ctx, m.Chat.ID)
}

// routeMessage dispatches typed text. Flow state is checked before commands,
// so text typed during a dialogue is never taken for a command. Menu buttons
// count as commands: they are never stored as flow input or graded as answers.
func (h *Handler) routeMessage(
	ctx context.Context,
	user *entities.User,
	state *entities.ConversationState,
	m *tgbotapi.Message,
) ([]entities.Reply, error) {
	text := strings.TrimSpace(m.Text)
	command, args, isCommand := parseCommand(m)

	if !user.IsRegistrationComplete && state.Kind() != entities.FlowRegistration {
		return h.conversations.StartRegistration(ctx, user.ID)
	}

	switch flow := state.Current().(type) {
	case *entities.RegistrationFlow, *entities.SupportTicketFlow, *entities.AddTopicFlow:
		ev := service.TextEvent(text)
		if isCommand {
			ev = service.CommandEvent(command)
		}
		return h.conversations.Advance(ctx, user, state, ev)

	case *entities.ReviewFlow:
		if !isCommand {
			return h.reviews.AnswerText(ctx, user.ID, flow, text)
		}
		if command == cmdCancel {
			return h.reviews.End(ctx, user.ID)
		}
	}

	if !isCommand {
		replies, err := h.reviews.InProgress(ctx, user.ID)
		if err != nil || len(replies) > 0 {
			return replies, err
		}
		return helpReplies(), nil
	}

	return h.runCommand(ctx, user, command, args)
}

func (h *Handler) loadUser(
	ctx context.Context,
	from *tgbotapi.User,
	chatID int64,
) (*entities.User, *entities.ConversationState, error) {
	user, created, err := h.users.EnsureUser(ctx, service.UserInfo{
		ID:        from.ID,
		ChatID:    chatID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ensure user: %w", err)
	}
	if created {
		h.logger.Info("new user", zap.Int64("user_id", user.ID))
	}

	state, err := h.states.Get(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get conversation state: %w", err)
	}
	return user, state, nil
}

func (h *Handler) sendReplies(chatID int64, replies []entities.Reply) {
	for _, r := range replies {
		msg, err := renderReply(chatID, r)
		if err != nil {
			h.logger.Error("failed to render reply", zap.Int64("chat_id", chatID), zap.Error(err))
			h.sendError(chatID, msgInternalError)
			continue
		}
		h.send(msg)
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
