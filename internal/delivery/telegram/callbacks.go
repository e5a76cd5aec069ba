package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer h.answerCallback(cb.ID)

	if cb.Message == nil || cb.Message.Chat == nil || cb.From == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	action, err := parseAction(cb.Data)
	if err != nil {
		h.logger.Warn("invalid callback data",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		return
	}

	_ = h.withErrorHandling("callback", cb.From.ID, func(ctx context.Context, chatID int64) error {
		user, state, err := h.loadUser(ctx, cb.From, chatID)
		if err != nil {
			return err
		}

		replies, err := h.routeAction(ctx, user, state, action)
		if err != nil {
			return err
		}

		h.clearButtons(chatID, cb.Message.MessageID)
		h.sendReplies(chatID, replies)
		return nil
	})(ctx, chatID)
}

// routeAction dispatches a pressed button. Dialogue flows own every button while active.
func (h *Handler) routeAction(
	ctx context.Context,
	user *entities.User,
	state *entities.ConversationState,
	action entities.Action,
) ([]entities.Reply, error) {
	if !user.IsRegistrationComplete && state.Kind() != entities.FlowRegistration {
		return h.conversations.StartRegistration(ctx, user.ID)
	}

	switch state.Kind() {
	case entities.FlowRegistration, entities.FlowAddTopic, entities.FlowSupportTicket:
		return h.conversations.Advance(ctx, user, state, service.ActionEvent(action))
	}

	switch action.Type {
	case entities.ActionStartReview:
		return h.reviews.Start(ctx, user.ID)
	case entities.ActionShowAnswer:
		return h.reviews.ShowAnswer(ctx, user.ID, action.Arg)
	case entities.ActionReviewCorrect, entities.ActionReviewIncorrect:
		return h.reviews.Grade(ctx, user.ID, action.Arg, action.Type == entities.ActionReviewCorrect)
	case entities.ActionReviewNext:
		return h.reviews.Continue(ctx, user.ID)
	case entities.ActionReviewEnd:
		return h.reviews.End(ctx, user.ID)
	case entities.ActionAddTopic:
		return h.conversations.StartAddTopic(ctx, user.ID)
	case entities.ActionSupport:
		return h.conversations.StartSupportTicket(ctx, user.ID)
	case entities.ActionStats:
		return h.cards.Stats(ctx, user.ID)
	default:
		return []entities.Reply{entities.NewReply(msgExpiredButton)}, nil
	}
}

func (h *Handler) clearButtons(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, emptyInlineKeyboard())
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.Debug("failed to clear inline keyboard", zap.Error(err))
	}
}

func (h *Handler) answerCallback(callbackID string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		h.logger.Debug("failed to answer callback", zap.Error(err))
	}
}
