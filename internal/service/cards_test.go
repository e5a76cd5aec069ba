package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

func newCardService(f *fixture) *CardService {
	svc := NewCardService(f.cards, f.topics, f.words, zap.NewNop())
	svc.now = f.clock
	return svc
}

func TestCardService_AddWordExplicit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newCardService(f)

	replies, err := svc.AddWord(ctx, 1, "la playa - the beach")
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), "la playa → the beach")

	cards, err := f.cards.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 1, cards[0].Box)
	assert.Equal(t, f.now, cards[0].NextReviewAt)
}

func TestCardService_AddWordLookup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newCardService(f)

	replies, err := svc.AddWord(ctx, 1, "playa")
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), msgAddNoLanguages)

	require.NoError(t, f.topics.Create(ctx, &entities.Topic{
		UserID: 1, Name: "travel", SourceLanguage: "es", TargetLanguage: "en", CreatedAt: f.now,
	}))

	f.words.data = entities.WordData{Translation: "beach", Definition: "Sand by the sea.", Status: entities.LookupOK}
	_, err = svc.AddWord(ctx, 1, "playa")
	require.NoError(t, err)

	f.words.data = entities.WordData{Status: entities.LookupFallback}
	replies, err = svc.AddWord(ctx, 1, "blorf")
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), "/add blorf - <translation>")

	f.words.dataErr = errors.New("timeout")
	replies, err = svc.AddWord(ctx, 1, "sol")
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), "timeout")

	cards, err := f.cards.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "beach", cards[0].Translation)
	assert.Equal(t, "es", cards[0].SourceLanguage)
	assert.Equal(t, "Sand by the sea.", cards[0].Definition)
}

func TestCardService_AddWordUsage(t *testing.T) {
	svc := newCardService(newFixture(t))

	for _, input := range []string{"", "   ", "word - ", " - translation"} {
		replies, err := svc.AddWord(context.Background(), 1, input)
		require.NoError(t, err)
		assert.Contains(t, replyTexts(replies), msgAddUsage, input)
	}
}

func TestCardService_Stats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newCardService(f)

	replies, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), msgReviewNoCards)

	f.addCard(t, 1, "perro", "dog", 0)
	f.addCard(t, 1, "gato", "cat", 0)

	replies, err = svc.Stats(ctx, 1)
	require.NoError(t, err)
	text := replyTexts(replies)
	assert.Contains(t, text, "Cards: 2")
	assert.Contains(t, text, "Due now: 2")
	assert.Contains(t, text, "Box 1 (every 1 day): 2")
	assert.NotEmpty(t, replies[0].Buttons)
}

func TestCardService_Topics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newCardService(f)

	replies, err := svc.Topics(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), msgNoTopics)

	require.NoError(t, f.topics.Create(ctx, &entities.Topic{
		UserID: 1, Name: "travel", SourceLanguage: "es", TargetLanguage: "en", CardCount: 10, CreatedAt: f.now,
	}))
	replies, err = svc.Topics(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, replyTexts(replies), "travel (Spanish → English, 10 words)")
}
