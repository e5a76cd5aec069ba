package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerMatcher_Match(t *testing.T) {
	m := NewAnswerMatcher()

	tests := []struct {
		name     string
		answer   string
		expected string
		rule     MatchRule
		close    bool
	}{
		{"exact", "hola (greeting)", "hola (greeting)", MatchExact, false},
		{"before parenthesis", "hola", "hola (greeting)", MatchBeforeParenthesis, false},
		{"case folded", "HOLA", "hola (greeting)", MatchBeforeParenthesis, false},
		{"unrelated", "xyz", "hola (greeting)", MatchNone, false},
		{"substring", "greet", "hola (greeting)", MatchSubstring, false},
		{"short substring rejected", "ho", "hola (greeting)", MatchNone, false},
		{"punctuation stripped", "well known", "well-known", MatchStripped, false},
		{"alternative", "to run", "to walk / to run", MatchSubstring, false},
		{"alternative stripped", "run!", "walk; run", MatchStripped, false},
		{"whitespace collapsed", "  good   morning ", "good morning", MatchExact, false},
		{"german sharp s", "STRASSE", "straße", MatchExact, false},
		{"arabic diacritics", "كتاب", "كِتَاب", MatchExact, false},
		{"typo is close", "hose", "horse", MatchNone, true},
		{"empty", "   ", "dog", MatchNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Match(tt.answer, tt.expected)
			assert.Equal(t, tt.rule, res.Rule)
			assert.Equal(t, tt.rule != MatchNone, res.Correct())
			assert.Equal(t, tt.close, res.Close)
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("", ""))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("horse", "hose"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, levenshteinDistance("día", "dia"))
}
