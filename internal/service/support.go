package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

const (
	minTicketSubject = 5
	minTicketMessage = 10
)

func (s *ConversationService) stepSupportTicket(
	ctx context.Context,
	user *entities.User,
	f *entities.SupportTicketFlow,
	ev Event,
) (stepResult, error) {
	if ev.IsCancel() {
		return done(entities.NewReply(msgTicketCancelled).WithMainMenu()), nil
	}
	if ev.IsCommand() {
		return stay(f, entities.NewReply(msgFinishFlowFirst), supportPrompt(f)), nil
	}

	switch f.Step {
	case entities.TicketAskSubject:
		v, ok := ev.input("")
		if !ok {
			return stay(f, supportPrompt(f)), nil
		}
		if utf8.RuneCountInString(v) < minTicketSubject {
			return stay(f, entities.NewReply(msgTicketSubjectTooShort)), nil
		}
		f.Subject = v
		f.Step = entities.TicketAskMessage

	case entities.TicketAskMessage:
		v, ok := ev.input("")
		if !ok {
			return stay(f, supportPrompt(f)), nil
		}
		if utf8.RuneCountInString(v) < minTicketMessage {
			return stay(f, entities.NewReply(msgTicketMessageTooShort)), nil
		}
		f.Message = v
		f.Step = entities.TicketConfirm

	case entities.TicketConfirm:
		switch ev.confirm(entities.ActionConfirmTicket, entities.ActionCancelTicket) {
		case confirmYes:
			ticket := &entities.SupportTicket{
				UserID:    user.ID,
				Subject:   f.Subject,
				Message:   f.Message,
				Status:    entities.TicketOpen,
				CreatedAt: s.now(),
			}
			if err := s.tickets.Create(ctx, ticket); err != nil {
				return stepResult{}, fmt.Errorf("create ticket: %w", err)
			}
			s.logger.Info("support ticket created",
				zap.Int64("user_id", user.ID),
				zap.String("ticket_id", ticket.ID),
			)
			return done(entities.NewReply(msgTicketSubmitted).WithMainMenu()), nil
		case confirmNo:
			return done(entities.NewReply(msgTicketCancelled).WithMainMenu()), nil
		}

	default:
		fresh := entities.NewSupportTicketFlow()
		return stay(fresh, supportPrompt(fresh)), nil
	}

	return stay(f, supportPrompt(f)), nil
}

func supportPrompt(f *entities.SupportTicketFlow) entities.Reply {
	cancel := entities.Row(entities.NewButton("❌ Cancel", entities.ActionCancelTicket))

	switch f.Step {
	case entities.TicketAskMessage:
		return entities.NewReply(msgTicketAskMessage).WithButtons(cancel)
	case entities.TicketConfirm:
		return entities.NewReply(fmt.Sprintf(msgTicketConfirm, f.Subject, f.Message)).WithButtons(entities.Row(
			entities.NewButton("📨 Send", entities.ActionConfirmTicket),
			entities.NewButton("❌ Cancel", entities.ActionCancelTicket),
		))
	}
	return entities.NewReply(msgTicketAskSubject).WithButtons(cancel)
}
