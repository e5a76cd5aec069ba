package entities

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ReminderTimeLayout is the HH:MM format reminder times are stored in.
const ReminderTimeLayout = "15:04"

// MaxReminderTimes limits how many reminders a user can have per day.
const MaxReminderTimes = 6

var ErrInvalidReminderTime = errors.New("invalid reminder time")

// ReminderStats contains the numbers shown in a reminder message.
type ReminderStats struct {
	DueNow int // cards due at the moment of sending
}

// ParseReminderTimes validates HH:MM values and returns them sorted and deduplicated.
func ParseReminderTimes(values []string) ([]string, error) {
	if len(values) > MaxReminderTimes {
		return nil, fmt.Errorf("%w: at most %d times per day", ErrInvalidReminderTime, MaxReminderTimes)
	}

	times := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		minutes, ok := parseClock(v, 23)
		if !ok || !strings.Contains(v, ":") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidReminderTime, v)
		}
		times = append(times, formatClock(minutes))
	}

	slices.Sort(times)
	return slices.Compact(times), nil
}
