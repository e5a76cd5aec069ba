package entities

import (
	"strings"
	"time"
)

// Card is a single vocabulary item owned by one user and scheduled with the Leitner boxes.
type Card struct {
	ID             string     `json:"id"`
	UserID         int64      `json:"user_id"`
	Word           string     `json:"word"`
	Translation    string     `json:"translation"`
	Definition     string     `json:"definition,omitempty"`
	Context        string     `json:"context,omitempty"` // example sentence
	SourceLanguage string     `json:"source_language,omitempty"`
	TargetLanguage string     `json:"target_language,omitempty"`
	Topic          string     `json:"topic,omitempty"`
	Box            int        `json:"box"`
	NextReviewAt   time.Time  `json:"next_review_at"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCard creates a card in the first box that is due immediately.
func NewCard(userID int64, w ExtractedWord, sourceLanguage, targetLanguage, topic string, now time.Time) *Card {
	return &Card{
		UserID:         userID,
		Word:           strings.TrimSpace(w.Word),
		Translation:    strings.TrimSpace(w.Translation),
		Definition:     strings.TrimSpace(w.Definition),
		Context:        strings.TrimSpace(w.Context),
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Topic:          topic,
		Box:            MinBox,
		NextReviewAt:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsDue reports whether the card should be reviewed at now.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReviewAt.After(now)
}

// CardPatch holds optional card field updates. Nil fields are left untouched.
type CardPatch struct {
	Word           *string
	Translation    *string
	Definition     *string
	Context        *string
	Topic          *string
	Box            *int
	NextReviewAt   *time.Time
	ReviewCount    *int
	CorrectCount   *int
	LastReviewedAt *time.Time
}

// Apply copies the set fields of p into c. Box is clamped into the valid range.
func (p CardPatch) Apply(c *Card) {
	if p.Word != nil {
		c.Word = *p.Word
	}
	if p.Translation != nil {
		c.Translation = *p.Translation
	}
	if p.Definition != nil {
		c.Definition = *p.Definition
	}
	if p.Context != nil {
		c.Context = *p.Context
	}
	if p.Topic != nil {
		c.Topic = *p.Topic
	}
	if p.Box != nil {
		c.Box = ClampBox(*p.Box)
	}
	if p.NextReviewAt != nil {
		c.NextReviewAt = *p.NextReviewAt
	}
	if p.ReviewCount != nil && *p.ReviewCount >= c.ReviewCount {
		c.ReviewCount = *p.ReviewCount
	}
	if p.CorrectCount != nil && *p.CorrectCount >= c.CorrectCount {
		c.CorrectCount = *p.CorrectCount
	}
	if c.CorrectCount > c.ReviewCount {
		c.CorrectCount = c.ReviewCount
	}
	if p.LastReviewedAt != nil {
		t := *p.LastReviewedAt
		c.LastReviewedAt = &t
	}
}

// CardStats summarizes a user's deck.
type CardStats struct {
	TotalCards      int
	DueNow          int
	BoxDistribution map[int]int // box -> number of cards
	NextReviewAt    *time.Time  // earliest upcoming review when nothing is due
}

// NewCardStats computes deck statistics at now.
func NewCardStats(cards []*Card, now time.Time) CardStats {
	stats := CardStats{
		TotalCards:      len(cards),
		BoxDistribution: make(map[int]int, MaxBox),
	}
	for b := MinBox; b <= MaxBox; b++ {
		stats.BoxDistribution[b] = 0
	}

	for _, c := range cards {
		stats.BoxDistribution[ClampBox(c.Box)]++
		if c.IsDue(now) {
			stats.DueNow++
			continue
		}
		if stats.NextReviewAt == nil || c.NextReviewAt.Before(*stats.NextReviewAt) {
			t := c.NextReviewAt
			stats.NextReviewAt = &t
		}
	}

	return stats
}
