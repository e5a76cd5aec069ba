package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

// ConversationStateStore keeps the single dialogue state blob of every user under convstate:{userId}.
type ConversationStateStore struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewConversationStateStore creates a new ConversationStateStore.
func NewConversationStateStore(kv storage.KeyValueStore, logger *zap.Logger) *ConversationStateStore {
	return &ConversationStateStore{kv: kv, logger: logger}
}

// Get returns the user's state, or nil when the user is idle.
// An unreadable state is dropped so the user is never stuck in a flow that cannot be decoded.
func (s *ConversationStateStore) Get(ctx context.Context, userID int64) (*entities.ConversationState, error) {
	key := convStateKey(userID)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation state: %w", err)
	}

	var state entities.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("dropping corrupt conversation state",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		if err := s.kv.Delete(ctx, key); err != nil {
			return nil, fmt.Errorf("drop conversation state: %w", err)
		}
		return nil, nil
	}

	return &state, nil
}

// Save replaces the user's state.
func (s *ConversationStateStore) Save(ctx context.Context, state *entities.ConversationState) error {
	if err := putJSON(ctx, s.kv, convStateKey(state.UserID), state); err != nil {
		return fmt.Errorf("save conversation state: %w", err)
	}
	return nil
}

// Clear returns the user to idle.
func (s *ConversationStateStore) Clear(ctx context.Context, userID int64) error {
	if err := s.kv.Delete(ctx, convStateKey(userID)); err != nil {
		return fmt.Errorf("clear conversation state: %w", err)
	}
	return nil
}
