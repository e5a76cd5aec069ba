package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

const maxUTCOffsetHours = 14

// ParseTimezone resolves an IANA zone ("Europe/Berlin") or a fixed UTC offset
// ("UTC+3", "gmt-02:30", "+5:45"). The String() of the returned location is the
// name stored on the user and parses back to the same zone.
// Fixed offsets ignore daylight saving time.
func ParseTimezone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	switch strings.ToUpper(tz) {
	case "", "UTC", "GMT", "Z", "ETC/UTC":
		return time.UTC, nil
	case "LOCAL":
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}

	if offset, ok := parseUTCOffset(tz); ok {
		if offset == 0 {
			return time.UTC, nil
		}
		return time.FixedZone(utcOffsetName(offset), offset), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// parseUTCOffset returns the offset in seconds east of UTC.
func parseUTCOffset(s string) (int, bool) {
	if len(s) > 3 {
		if prefix := strings.ToUpper(s[:3]); prefix == "UTC" || prefix == "GMT" {
			s = strings.TrimSpace(s[3:])
		}
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}

	minutes, ok := parseClock(s[1:], maxUTCOffsetHours)
	if !ok {
		return 0, false
	}
	if s[0] == '-' {
		minutes = -minutes
	}
	return minutes * 60, true
}

func utcOffsetName(offsetSec int) string {
	sign := '+'
	if offsetSec < 0 {
		sign, offsetSec = '-', -offsetSec
	}
	return fmt.Sprintf("UTC%c%s", sign, formatClock(offsetSec/60))
}

// parseClock reads "H", "HH", "H:MM" or "HH:MM" as minutes, the hour capped at maxHour.
// Reminder times and UTC offsets share it.
func parseClock(s string, maxHour int) (int, bool) {
	hh, mm, hasMinutes := strings.Cut(s, ":")
	if !hasMinutes {
		mm = "00"
	}
	if len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !isDigits(hh) || !isDigits(mm) {
		return 0, false
	}

	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > maxHour || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
