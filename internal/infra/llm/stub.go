package llm

import (
	"context"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// Stub is a provider used when no API key is configured. It never finds anything.
type Stub struct{}

// NewStub creates a new no-op provider.
func NewStub() *Stub { return &Stub{} }

// ExtractWords always returns an empty list.
func (s *Stub) ExtractWords(_ context.Context, _ entities.WordRequest) ([]entities.ExtractedWord, error) {
	return []entities.ExtractedWord{}, nil
}

// ExtractWordData always reports a fallback result.
func (s *Stub) ExtractWordData(_ context.Context, _, _, _ string) (entities.WordData, error) {
	return entities.WordData{Status: entities.LookupFallback}, nil
}
