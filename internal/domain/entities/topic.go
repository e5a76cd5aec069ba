package entities

import "time"

// Topic is a named language-pair grouping of cards. Descriptive metadata only.
type Topic struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	WordLevel      string    `json:"word_level,omitempty"`
	CardCount      int       `json:"card_count"`
	CreatedAt      time.Time `json:"created_at"`
}
