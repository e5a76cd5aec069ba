package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchRule tells which rule accepted an answer.
type MatchRule int

const (
	MatchNone MatchRule = iota
	MatchExact
	MatchBeforeParenthesis
	MatchSubstring
	MatchStripped
)

// MatchResult is the verdict for a typed answer.
type MatchResult struct {
	Rule  MatchRule
	Close bool // not accepted, but within a typo of the expected answer
}

func (r MatchResult) Correct() bool {
	return r.Rule != MatchNone
}

// AnswerMatcher checks typed translations against the expected one.
type AnswerMatcher struct {
	threshold float64 // similarity above which a wrong answer is reported as close
}

// NewAnswerMatcher creates a new AnswerMatcher.
func NewAnswerMatcher() *AnswerMatcher {
	return &AnswerMatcher{
		threshold: 0.8,
	}
}

// Match applies the rules in order: exact, text before a parenthesis,
// substring of the expected answer, and equality with punctuation removed.
func (m *AnswerMatcher) Match(answer, expected string) MatchResult {
	user := m.normalize(answer)
	correct := m.normalize(expected)

	if user == "" {
		return MatchResult{}
	}

	if user == correct {
		return MatchResult{Rule: MatchExact}
	}

	base := correct
	if i := strings.IndexAny(correct, "(["); i > 0 {
		base = strings.TrimSpace(correct[:i])
		if user == base {
			return MatchResult{Rule: MatchBeforeParenthesis}
		}
	}

	if utf8.RuneCountInString(user) > 2 && strings.Contains(correct, user) {
		return MatchResult{Rule: MatchSubstring}
	}

	if stripped := stripPunctuation(user); stripped != "" {
		if stripped == stripPunctuation(correct) {
			return MatchResult{Rule: MatchStripped}
		}
		for _, alt := range strings.FieldsFunc(correct, isAlternativeSeparator) {
			if stripped == stripPunctuation(alt) {
				return MatchResult{Rule: MatchStripped}
			}
		}
	}

	return MatchResult{Close: m.similarity(user, base) >= m.threshold}
}

// normalize folds case and unicode forms so visually equal strings compare equal.
func (m *AnswerMatcher) normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)

	// Normalize Arabic text
	s = normalizeArabic(s)

	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (m *AnswerMatcher) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

func isAlternativeSeparator(r rune) bool {
	return r == '/' || r == ',' || r == ';' || r == '|'
}

func stripPunctuation(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// normalizeArabic removes diacritics and unifies letter variants.
func normalizeArabic(s string) string {
	s = strings.Map(func(r rune) rune {
		// Arabic diacritics range: U+064B to U+065F
		if r >= 0x064B && r <= 0x065F {
			return -1
		}
		// Tatweel (kashida): U+0640
		if r == 0x0640 {
			return -1
		}
		return r
	}, s)

	replacements := map[rune]rune{
		'أ': 'ا', // Alef with hamza above
		'إ': 'ا', // Alef with hamza below
		'آ': 'ا', // Alef with madda
		'ة': 'ه', // Teh marbuta to heh
		'ى': 'ي', // Alef maksura to yeh
	}

	return strings.Map(func(r rune) rune {
		if normalized, ok := replacements[r]; ok {
			return normalized
		}
		return r
	}, s)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // Insertion
				prev[j]+1,      // Deletion
				prev[j-1]+cost, // Substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
