package llm

import (
	"context"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// Provider is the word provider contract shared by all implementations in this package.
type Provider interface {
	ExtractWords(ctx context.Context, req entities.WordRequest) ([]entities.ExtractedWord, error)
	ExtractWordData(ctx context.Context, word, sourceLanguage, targetLanguage string) (entities.WordData, error)
}

// Limiter gates calls. Allow returns an error when the call must be rejected.
type Limiter interface {
	Allow() error
}

// RateLimited rejects provider calls once the limiter is exhausted.
type RateLimited struct {
	next    Provider
	limiter Limiter
}

// NewRateLimited wraps next with limiter.
func NewRateLimited(next Provider, limiter Limiter) *RateLimited {
	return &RateLimited{next: next, limiter: limiter}
}

func (r *RateLimited) ExtractWords(ctx context.Context, req entities.WordRequest) ([]entities.ExtractedWord, error) {
	if err := r.limiter.Allow(); err != nil {
		return nil, err
	}
	return r.next.ExtractWords(ctx, req)
}

func (r *RateLimited) ExtractWordData(
	ctx context.Context,
	word, sourceLanguage, targetLanguage string,
) (entities.WordData, error) {
	if err := r.limiter.Allow(); err != nil {
		return entities.WordData{Status: entities.LookupError}, err
	}
	return r.next.ExtractWordData(ctx, word, sourceLanguage, targetLanguage)
}
