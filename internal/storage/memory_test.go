package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "user:1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "user:1", []byte(`{"id":1}`)))
	require.NoError(t, s.Put(ctx, "user:1", []byte(`{"id":1,"is_active":true}`)))

	got, err := s.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"is_active":true}`, string(got))

	require.NoError(t, s.Delete(ctx, "user:1"))
	require.NoError(t, s.Delete(ctx, "user:1"))
	_, err = s.Get(ctx, "user:1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v := []byte(`"a"`)
	require.NoError(t, s.Put(ctx, "k", v))
	v[1] = 'b'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(got))
}

func TestMemoryStore_ListAndDeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, k := range []string{"card:1:b", "card:1:a", "card:12:a", "card:2:a", "user:1"} {
		require.NoError(t, s.Put(ctx, k, []byte(`{}`)))
	}

	entries, err := s.List(ctx, "card:1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "card:1:a", entries[0].Key)
	assert.Equal(t, "card:1:b", entries[1].Key)

	n, err := s.DeletePrefix(ctx, "card:1:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err = s.List(ctx, "card:")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
