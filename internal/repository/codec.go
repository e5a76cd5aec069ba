package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

// getJSON loads and decodes the value under key. storage.ErrNotFound is passed through wrapped.
func getJSON[T any](ctx context.Context, kv storage.KeyValueStore, key string) (*T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return &v, nil
}

func putJSON(ctx context.Context, kv storage.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Put(ctx, key, raw)
}

// listJSON decodes every entry under prefix. Entries that fail to decode or fail
// the valid check are skipped with a warning so one broken record never hides the rest.
func listJSON[T any](
	ctx context.Context,
	kv storage.KeyValueStore,
	prefix string,
	logger *zap.Logger,
	valid func(*T) bool,
) ([]*T, error) {
	entries, err := kv.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	items := make([]*T, 0, len(entries))
	for _, e := range entries {
		var v T
		if err := json.Unmarshal(e.Value, &v); err != nil {
			logger.Warn("skipping corrupt record",
				zap.String("key", e.Key),
				zap.Error(err),
			)
			continue
		}
		if valid != nil && !valid(&v) {
			logger.Warn("skipping invalid record", zap.String("key", e.Key))
			continue
		}
		items = append(items, &v)
	}

	return items, nil
}
