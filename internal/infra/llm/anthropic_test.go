package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/limiter"
)

func TestParseWords(t *testing.T) {
	text := "Sure! Here you go:\n" + `[
		{"word": "gato", "translation": "cat", "definition": "A small pet.", "context": "El gato duerme."},
		{"word": "Gato", "translation": "cat", "definition": "duplicate"},
		{"word": "", "translation": "nothing"},
		{"word": "perro", "translation": "dog", "definition": "A loyal pet."},
		{"word": "pez", "translation": "fish", "definition": "Lives in water."}
	]` + "\nEnjoy."

	words, err := parseWords(text, 2)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "gato", words[0].Word)
	assert.Equal(t, "El gato duerme.", words[0].Context)
	assert.Equal(t, "perro", words[1].Word)
}

func TestParseWords_NoJSON(t *testing.T) {
	_, err := parseWords("I cannot help with that.", 5)
	assert.Error(t, err)

	words, err := parseWords("[]", 5)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestParseWordData(t *testing.T) {
	ok := parseWordData("gato", `{"found": true, "translation": "cat", "definition": "A small pet."}`)
	assert.Equal(t, entities.LookupOK, ok.Status)
	assert.Equal(t, "cat", ok.Translation)

	notFound := parseWordData("blorf", `{"found": false}`)
	assert.Equal(t, entities.LookupFallback, notFound.Status)

	echoed := parseWordData("taxi", `{"found": true, "translation": "Taxi"}`)
	assert.Equal(t, entities.LookupFallback, echoed.Status)

	garbage := parseWordData("gato", `translation: cat`)
	assert.Equal(t, entities.LookupFallback, garbage.Status)
}

type countingProvider struct {
	calls int
}

func (p *countingProvider) ExtractWords(context.Context, entities.WordRequest) ([]entities.ExtractedWord, error) {
	p.calls++
	return []entities.ExtractedWord{{Word: "a", Translation: "b"}}, nil
}

func (p *countingProvider) ExtractWordData(context.Context, string, string, string) (entities.WordData, error) {
	p.calls++
	return entities.WordData{Translation: "b", Status: entities.LookupOK}, nil
}

func TestRateLimited(t *testing.T) {
	next := &countingProvider{}
	p := NewRateLimited(next, limiter.NewFixedWindow(2, time.Hour))
	ctx := context.Background()

	_, err := p.ExtractWords(ctx, entities.WordRequest{Topic: "x", Count: 1})
	require.NoError(t, err)
	_, err = p.ExtractWordData(ctx, "a", "es", "en")
	require.NoError(t, err)

	_, err = p.ExtractWords(ctx, entities.WordRequest{Topic: "x", Count: 1})
	assert.ErrorIs(t, err, limiter.ErrLimitExceeded)

	data, err := p.ExtractWordData(ctx, "a", "es", "en")
	assert.ErrorIs(t, err, limiter.ErrLimitExceeded)
	assert.Equal(t, entities.LookupError, data.Status)

	assert.Equal(t, 2, next.calls)
}
