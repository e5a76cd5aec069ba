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

var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepository stores bulk word assignments under assignment:{id}.
type AssignmentRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(kv storage.KeyValueStore, logger *zap.Logger) *AssignmentRepository {
	return &AssignmentRepository{kv: kv, logger: logger}
}

// Save inserts or replaces an assignment, assigning an id to new ones.
func (r *AssignmentRepository) Save(ctx context.Context, a *entities.BulkWordAssignment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := putJSON(ctx, r.kv, assignmentKey(a.ID), a); err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	return nil
}

// Get returns an assignment by id.
func (r *AssignmentRepository) Get(ctx context.Context, id string) (*entities.BulkWordAssignment, error) {
	a, err := getJSON[entities.BulkWordAssignment](ctx, r.kv, assignmentKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// List returns all assignments, newest first.
func (r *AssignmentRepository) List(ctx context.Context) ([]*entities.BulkWordAssignment, error) {
	items, err := listJSON(ctx, r.kv, assignmentPrefix, r.logger, func(a *entities.BulkWordAssignment) bool {
		return a.ID != ""
	})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	slices.SortFunc(items, func(a, b *entities.BulkWordAssignment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return items, nil
}
