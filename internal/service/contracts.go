package service

import (
	"context"
	"time"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

type UserRepository interface {
	Get(ctx context.Context, userID int64) (*entities.User, error)
	Save(ctx context.Context, user *entities.User) error
	List(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, userID int64) error
}

type CardRepository interface {
	Create(ctx context.Context, card *entities.Card) (*entities.Card, error)
	Get(ctx context.Context, userID int64, cardID string) (*entities.Card, error)
	ListByUser(ctx context.Context, userID int64, box int) ([]*entities.Card, error)
	ListDue(ctx context.Context, userID int64, now time.Time, limit int) ([]*entities.Card, error)
	CountDue(ctx context.Context, userID int64, now time.Time) (int, error)
	Save(ctx context.Context, card *entities.Card) error
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

type ConversationStateStore interface {
	Get(ctx context.Context, userID int64) (*entities.ConversationState, error)
	Save(ctx context.Context, state *entities.ConversationState) error
	Clear(ctx context.Context, userID int64) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *entities.ReviewSession) error
	Update(ctx context.Context, s *entities.ReviewSession) error
	GetActive(ctx context.Context, userID int64) (*entities.ReviewSession, error)
	ListActive(ctx context.Context) ([]*entities.ReviewSession, error)
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

type TopicRepository interface {
	Create(ctx context.Context, t *entities.Topic) error
	ListByUser(ctx context.Context, userID int64) ([]*entities.Topic, error)
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *entities.SupportTicket) error
	Get(ctx context.Context, userID int64, ticketID string) (*entities.SupportTicket, error)
	Update(ctx context.Context, t *entities.SupportTicket) error
	List(ctx context.Context) ([]*entities.SupportTicket, error)
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

type DirectMessageRepository interface {
	Create(ctx context.Context, m *entities.DirectMessage) error
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

type AssignmentRepository interface {
	Save(ctx context.Context, a *entities.BulkWordAssignment) error
	List(ctx context.Context) ([]*entities.BulkWordAssignment, error)
}

// WordProvider generates vocabulary. ExtractWords returns an empty slice when nothing was found
// and an error only for provider failures.
type WordProvider interface {
	ExtractWords(ctx context.Context, req entities.WordRequest) ([]entities.ExtractedWord, error)
	ExtractWordData(ctx context.Context, word, sourceLanguage, targetLanguage string) (entities.WordData, error)
}

// Notifier delivers messages the bot sends on its own (reminders, broadcasts).
type Notifier interface {
	Notify(ctx context.Context, chatID int64, reply entities.Reply) error
}
