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

// TopicRepository stores topics under topic:{userId}:{topicId}.
type TopicRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(kv storage.KeyValueStore, logger *zap.Logger) *TopicRepository {
	return &TopicRepository{kv: kv, logger: logger}
}

// Create stores a topic and assigns its id.
func (r *TopicRepository) Create(ctx context.Context, t *entities.Topic) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := putJSON(ctx, r.kv, ownedKey(topicPrefix, t.UserID, t.ID), t); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// ListByUser returns the user's topics, newest first.
func (r *TopicRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Topic, error) {
	topics, err := listJSON(ctx, r.kv, ownedPrefix(topicPrefix, userID), r.logger, func(t *entities.Topic) bool {
		return t.ID != ""
	})
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	slices.SortFunc(topics, func(a, b *entities.Topic) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return topics, nil
}

// DeleteByUser removes all topics of a user.
func (r *TopicRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	n, err := r.kv.DeletePrefix(ctx, ownedPrefix(topicPrefix, userID))
	if err != nil {
		return 0, fmt.Errorf("delete topics: %w", err)
	}
	return n, nil
}
