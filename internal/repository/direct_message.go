package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

// DirectMessageRepository stores operator messages under dm:{userId}:{messageId}.
type DirectMessageRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewDirectMessageRepository creates a new DirectMessageRepository.
func NewDirectMessageRepository(kv storage.KeyValueStore, logger *zap.Logger) *DirectMessageRepository {
	return &DirectMessageRepository{kv: kv, logger: logger}
}

// Create stores a message record and assigns its id.
func (r *DirectMessageRepository) Create(ctx context.Context, m *entities.DirectMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := putJSON(ctx, r.kv, ownedKey(dmPrefix, m.UserID, m.ID), m); err != nil {
		return fmt.Errorf("create direct message: %w", err)
	}
	return nil
}

// ListByUser returns messages sent to a user, oldest first.
func (r *DirectMessageRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.DirectMessage, error) {
	msgs, err := listJSON(ctx, r.kv, ownedPrefix(dmPrefix, userID), r.logger, func(m *entities.DirectMessage) bool {
		return m.ID != ""
	})
	if err != nil {
		return nil, fmt.Errorf("list direct messages: %w", err)
	}

	slices.SortFunc(msgs, func(a, b *entities.DirectMessage) int {
		return a.SentAt.Compare(b.SentAt)
	})
	return msgs, nil
}

// DeleteByUser removes all messages of a user.
func (r *DirectMessageRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	n, err := r.kv.DeletePrefix(ctx, ownedPrefix(dmPrefix, userID))
	if err != nil {
		return 0, fmt.Errorf("delete direct messages: %w", err)
	}
	return n, nil
}
