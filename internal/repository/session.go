package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

var ErrSessionNotFound = errors.New("review session not found")

// SessionRepository stores review sessions under session:{userId}:{sessionId}.
type SessionRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(kv storage.KeyValueStore, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{kv: kv, logger: logger}
}

// Create stores a new session and assigns its id.
func (r *SessionRepository) Create(ctx context.Context, s *entities.ReviewSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := putJSON(ctx, r.kv, ownedKey(sessionPrefix, s.UserID, s.ID), s); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get returns a session by id.
func (r *SessionRepository) Get(ctx context.Context, userID int64, sessionID string) (*entities.ReviewSession, error) {
	s, err := getJSON[entities.ReviewSession](ctx, r.kv, ownedKey(sessionPrefix, userID, sessionID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// Update overwrites a session.
func (r *SessionRepository) Update(ctx context.Context, s *entities.ReviewSession) error {
	if err := putJSON(ctx, r.kv, ownedKey(sessionPrefix, s.UserID, s.ID), s); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// GetActive returns the user's active session. When several are active the latest started wins.
func (r *SessionRepository) GetActive(ctx context.Context, userID int64) (*entities.ReviewSession, error) {
	sessions, err := listJSON(ctx, r.kv, ownedPrefix(sessionPrefix, userID), r.logger, validSession)
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}

	var active *entities.ReviewSession
	for _, s := range sessions {
		if !s.IsActive() {
			continue
		}
		if active == nil || s.StartedAt.After(active.StartedAt) {
			active = s
		}
	}

	if active == nil {
		return nil, ErrSessionNotFound
	}
	return active, nil
}

// ListActive returns active sessions of all users.
func (r *SessionRepository) ListActive(ctx context.Context) ([]*entities.ReviewSession, error) {
	sessions, err := listJSON(ctx, r.kv, sessionPrefix, r.logger, validSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	active := sessions[:0]
	for _, s := range sessions {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	return active, nil
}

// DeleteByUser removes all sessions of a user.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	n, err := r.kv.DeletePrefix(ctx, ownedPrefix(sessionPrefix, userID))
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return n, nil
}

func validSession(s *entities.ReviewSession) bool {
	return s.ID != "" && s.UserID != 0
}
