package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewFixedWindow(2, time.Minute)
	l.now = func() time.Time { return now }

	require.NoError(t, l.Allow())
	require.NoError(t, l.Allow())
	assert.ErrorIs(t, l.Allow(), ErrLimitExceeded)

	now = now.Add(59 * time.Second)
	assert.ErrorIs(t, l.Allow(), ErrLimitExceeded)

	now = now.Add(time.Second)
	assert.NoError(t, l.Allow(), "a new window starts after the old one expired")
}
