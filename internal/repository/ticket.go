package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

var ErrTicketNotFound = errors.New("support ticket not found")

// TicketRepository stores support tickets under ticket:{userId}:{ticketId}.
type TicketRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(kv storage.KeyValueStore, logger *zap.Logger) *TicketRepository {
	return &TicketRepository{kv: kv, logger: logger}
}

// Create stores a ticket and assigns its id.
func (r *TicketRepository) Create(ctx context.Context, t *entities.SupportTicket) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := putJSON(ctx, r.kv, ownedKey(ticketPrefix, t.UserID, t.ID), t); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// Get returns a ticket.
func (r *TicketRepository) Get(ctx context.Context, userID int64, ticketID string) (*entities.SupportTicket, error) {
	t, err := getJSON[entities.SupportTicket](ctx, r.kv, ownedKey(ticketPrefix, userID, ticketID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// Update overwrites a ticket.
func (r *TicketRepository) Update(ctx context.Context, t *entities.SupportTicket) error {
	if err := putJSON(ctx, r.kv, ownedKey(ticketPrefix, t.UserID, t.ID), t); err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// List returns tickets of all users, newest first.
func (r *TicketRepository) List(ctx context.Context) ([]*entities.SupportTicket, error) {
	tickets, err := listJSON(ctx, r.kv, ticketPrefix, r.logger, func(t *entities.SupportTicket) bool {
		return t.ID != ""
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	slices.SortFunc(tickets, func(a, b *entities.SupportTicket) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return tickets, nil
}

// DeleteByUser removes all tickets of a user.
func (r *TicketRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	n, err := r.kv.DeletePrefix(ctx, ownedPrefix(ticketPrefix, userID))
	if err != nil {
		return 0, fmt.Errorf("delete tickets: %w", err)
	}
	return n, nil
}
