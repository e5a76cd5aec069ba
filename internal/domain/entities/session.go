package entities

import "time"

// SessionStatus is the lifecycle state of a review session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// ReviewSession tracks one study session of a user.
// A user has at most one active session at a time.
type ReviewSession struct {
	ID             string        `json:"id"`
	UserID         int64         `json:"user_id"`
	CardsReviewed  int           `json:"cards_reviewed"`
	CorrectAnswers int           `json:"correct_answers"`
	Status         SessionStatus `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	LastActivityAt time.Time     `json:"last_activity_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
}

// NewReviewSession creates an active session for a user.
func NewReviewSession(userID int64, now time.Time) *ReviewSession {
	return &ReviewSession{
		UserID:         userID,
		Status:         SessionActive,
		StartedAt:      now,
		LastActivityAt: now,
	}
}

// IsActive reports whether the session still accepts answers.
func (s *ReviewSession) IsActive() bool {
	return s.Status == SessionActive
}

// RecordAnswer bumps the counters after a reviewed card was persisted.
func (s *ReviewSession) RecordAnswer(isCorrect bool, now time.Time) {
	s.CardsReviewed++
	if isCorrect {
		s.CorrectAnswers++
	}
	s.LastActivityAt = now
}

// Touch marks user activity without an answer (e.g. a card was presented).
func (s *ReviewSession) Touch(now time.Time) {
	s.LastActivityAt = now
}

// Accuracy returns correctAnswers/cardsReviewed, or 0 when nothing was reviewed.
func (s *ReviewSession) Accuracy() float64 {
	if s.CardsReviewed == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.CardsReviewed)
}

// Complete marks the session as completed and sets the completion timestamp.
func (s *ReviewSession) Complete(now time.Time) {
	s.Status = SessionCompleted
	s.CompletedAt = &now
	s.LastActivityAt = now
}

// Abandon closes a session the user walked away from.
func (s *ReviewSession) Abandon(now time.Time) {
	s.Status = SessionAbandoned
	s.CompletedAt = &now
}

// IsStale reports whether an active session has been idle for longer than timeout.
// A non-positive timeout disables staleness.
func (s *ReviewSession) IsStale(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 || !s.IsActive() {
		return false
	}
	return now.Sub(s.LastActivityAt) > timeout
}

// SessionSummary is reported when a session ends.
type SessionSummary struct {
	Session         ReviewSession
	Accuracy        float64
	BoxDistribution map[int]int
}
