package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		data string
		want entities.Action
		err  error
	}{
		{data: "review_next", want: entities.NewAction(entities.ActionReviewNext)},
		{data: "review_next:ignored", want: entities.NewAction(entities.ActionReviewNext)},
		{data: "select_language:es", want: entities.NewAction(entities.ActionSelectLanguage, "es")},
		{data: "set_topic:time: hours", want: entities.NewAction(entities.ActionSetTopic, "time: hours")},
		{data: "select_language", err: errMissingArgument},
		{data: "select_language:", err: errMissingArgument},
		{data: "", err: errUnknownAction},
		{data: "drop_tables:1", err: errUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := parseAction(tt.data)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeAction(t *testing.T) {
	data, err := encodeAction(entities.NewAction(entities.ActionBack, "ask_source"))
	require.NoError(t, err)
	assert.Equal(t, "back:ask_source", data)

	parsed, err := parseAction(data)
	require.NoError(t, err)
	assert.Equal(t, entities.NewAction(entities.ActionBack, "ask_source"), parsed)

	_, err = encodeAction(entities.NewAction(entities.ActionSetTopic, strings.Repeat("x", 64)))
	assert.ErrorIs(t, err, errCallbackTooLong)
}
