// Package storage defines the key-value contract all repositories are built on
// and an in-memory implementation of it.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Entry is a single key with its raw JSON value.
type Entry struct {
	Key   string
	Value []byte
}

// KeyValueStore stores JSON blobs by string key. There are no transactions: the last write wins.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns all entries whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Entry, error)
	// DeletePrefix removes all keys starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
