package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to users stored under user:{id}.
type UserRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(kv storage.KeyValueStore, logger *zap.Logger) *UserRepository {
	return &UserRepository{kv: kv, logger: logger}
}

// Get returns the user with the given Telegram id.
func (r *UserRepository) Get(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := getJSON[entities.User](ctx, r.kv, userKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Save inserts a new user or replaces an existing one.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	if err := putJSON(ctx, r.kv, userKey(user.ID), user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// List returns all users. Corrupt records are skipped.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	users, err := listJSON(ctx, r.kv, userPrefix, r.logger, func(u *entities.User) bool {
		return u.ID != 0
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes the user record only. Owned data is removed by the caller.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.kv.Delete(ctx, userKey(userID)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
