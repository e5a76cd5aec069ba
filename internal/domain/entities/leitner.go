package entities

import "time"

// Leitner box bounds.
const (
	MinBox = 1
	MaxBox = 5
)

// intervalDays maps a box to the number of days until its next review.
var intervalDays = [MaxBox + 1]int{1: 1, 2: 2, 3: 4, 4: 8, 5: 16}

// ClampBox forces b into [MinBox, MaxBox].
func ClampBox(b int) int {
	if b < MinBox {
		return MinBox
	}
	if b > MaxBox {
		return MaxBox
	}
	return b
}

// IntervalDays returns the review interval for the box in days.
func IntervalDays(box int) int {
	return intervalDays[ClampBox(box)]
}

// NextBox moves a card one box up on a correct answer and back to the first box otherwise.
func NextBox(currentBox int, isCorrect bool) int {
	if !isCorrect {
		return MinBox
	}
	return min(ClampBox(currentBox)+1, MaxBox)
}

// NextReviewDate returns now plus the interval of the box, in whole 24h days.
func NextReviewDate(box int, now time.Time) time.Time {
	return now.Add(time.Duration(IntervalDays(box)) * 24 * time.Hour)
}

// ProcessReview returns a copy of the card rescheduled after one answer.
// The caller persists the result.
func (c Card) ProcessReview(isCorrect bool, now time.Time) Card {
	c.Box = NextBox(c.Box, isCorrect)
	c.NextReviewAt = NextReviewDate(c.Box, now)
	c.ReviewCount++
	if isCorrect {
		c.CorrectCount++
	}
	reviewedAt := now
	c.LastReviewedAt = &reviewedAt
	c.UpdatedAt = now
	return c
}
