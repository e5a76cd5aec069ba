package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

func newCardRepo(t *testing.T, now time.Time) (*CardRepository, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	repo := NewCardRepository(kv, zap.NewNop())
	repo.now = func() time.Time { return now }
	return repo, kv
}

func TestCardRepository_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	repo, _ := newCardRepo(t, now)

	created, err := repo.Create(ctx, &entities.Card{UserID: 5, Word: "perro", Translation: "dog", Box: 0})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entities.MinBox, created.Box)
	assert.Equal(t, now, created.NextReviewAt)
	assert.Equal(t, now, created.CreatedAt)

	got, err := repo.Get(ctx, 5, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "perro", got.Word)

	_, err = repo.Get(ctx, 6, created.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)

	deleted, err := repo.Delete(ctx, 5, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, 5, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCardRepository_ListDue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	repo, _ := newCardRepo(t, now)

	offsets := []time.Duration{3 * time.Hour, -time.Hour, 0, -48 * time.Hour, 24 * time.Hour, -2 * time.Hour}
	for i, off := range offsets {
		_, err := repo.Create(ctx, &entities.Card{
			ID:           fmt.Sprintf("c%d", i),
			UserID:       1,
			Word:         fmt.Sprintf("w%d", i),
			Box:          1,
			NextReviewAt: now.Add(off),
		})
		require.NoError(t, err)
	}
	// another user's due card must not leak in
	_, err := repo.Create(ctx, &entities.Card{ID: "x", UserID: 2, Box: 1, NextReviewAt: now.Add(-time.Hour)})
	require.NoError(t, err)

	due, err := repo.ListDue(ctx, 1, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 4)
	assert.Equal(t, []string{"c3", "c5", "c1", "c2"}, cardIDs(due))

	limited, err := repo.ListDue(ctx, 1, now, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c5"}, cardIDs(limited))

	count, err := repo.CountDue(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestCardRepository_ListByUser_BoxFilter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	repo, _ := newCardRepo(t, now)

	for i, box := range []int{1, 3, 3, 5} {
		_, err := repo.Create(ctx, &entities.Card{
			ID: fmt.Sprintf("c%d", i), UserID: 1, Box: box, NextReviewAt: now.Add(time.Duration(-i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := repo.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c2", "c1", "c0"}, cardIDs(all))

	box3, err := repo.ListByUser(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, cardIDs(box3))
}

func TestCardRepository_ListByUser_SkipsCorrupt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	core, logs := observer.New(zap.WarnLevel)

	kv := storage.NewMemoryStore()
	repo := NewCardRepository(kv, zap.New(core))
	repo.now = func() time.Time { return now }

	for i := range 9 {
		_, err := repo.Create(ctx, &entities.Card{ID: fmt.Sprintf("c%d", i), UserID: 1, Box: 1})
		require.NoError(t, err)
	}
	require.NoError(t, kv.Put(ctx, "card:1:broken", []byte(`{"id": "broken", "box": `)))

	cards, err := repo.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, cards, 9)
	assert.Equal(t, 1, logs.FilterMessage("skipping corrupt record").Len())

	due, err := repo.ListDue(ctx, 1, now, 0)
	require.NoError(t, err)
	assert.Len(t, due, 9)
}

func TestCardRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	repo, _ := newCardRepo(t, now)

	c, err := repo.Create(ctx, &entities.Card{UserID: 1, Word: "casa", Translation: "hose", Box: 1})
	require.NoError(t, err)

	fixed := "house"
	updated, err := repo.Update(ctx, 1, c.ID, entities.CardPatch{Translation: &fixed})
	require.NoError(t, err)
	assert.Equal(t, "house", updated.Translation)

	_, err = repo.Update(ctx, 1, "missing", entities.CardPatch{Translation: &fixed})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func cardIDs(cards []*entities.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
