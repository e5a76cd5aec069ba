package entities

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReminderTimes(t *testing.T) {
	got, err := ParseReminderTimes([]string{"20:30", "9:05", "09:05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:05", "20:30"}, got)

	_, err = ParseReminderTimes([]string{"25:00"})
	assert.ErrorIs(t, err, ErrInvalidReminderTime)

	_, err = ParseReminderTimes([]string{"1", "2", "3", "4", "5", "6", "7"})
	assert.ErrorIs(t, err, ErrInvalidReminderTime)
}

func TestUser_HasReminderAt(t *testing.T) {
	u := NewUser(1, 1, time.Now())
	u.ReminderTimes = []string{"09:00"}
	u.Timezone = "UTC+3"

	assert.True(t, u.HasReminderAt(time.Date(2026, 1, 1, 6, 0, 30, 0, time.UTC)))
	assert.False(t, u.HasReminderAt(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)))
}

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		in     string
		name   string
		offset int
	}{
		{in: "UTC-03:30", name: "UTC-03:30", offset: -(3*3600 + 30*60)},
		{in: "utc+3", name: "UTC+03:00", offset: 3 * 3600},
		{in: "GMT+5:45", name: "UTC+05:45", offset: 5*3600 + 45*60},
		{in: "+14", name: "UTC+14:00", offset: 14 * 3600},
		{in: "UTC+0", name: "UTC", offset: 0},
		{in: "gmt", name: "UTC", offset: 0},
		{in: "Asia/Tokyo", name: "Asia/Tokyo", offset: 9 * 3600},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, err := ParseTimezone(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.name, loc.String())

			_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
			assert.Equal(t, tt.offset, offset)

			// The stored name parses back to the same zone.
			again, err := ParseTimezone(loc.String())
			require.NoError(t, err)
			assert.Equal(t, loc.String(), again.String())
		})
	}

	for _, bad := range []string{"Mars/Olympus", "UTC+15", "+3:7", "UTC+ab", "+", "Local", "UTC+-3"} {
		_, err := ParseTimezone(bad)
		assert.ErrorIs(t, err, ErrInvalidTimezone, bad)
	}
}

func TestParseReminderTimes_RejectsMalformed(t *testing.T) {
	for _, bad := range []string{"8", "8:5", "+8:00", "24:00", "08:60", "ab:cd"} {
		_, err := ParseReminderTimes([]string{bad})
		assert.ErrorIs(t, err, ErrInvalidReminderTime, bad)
	}
}
