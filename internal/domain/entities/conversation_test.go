package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationState_JSONKeepsVariant(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	flows := []Flow{
		&RegistrationFlow{Step: RegAskEmail, Language: "en", FullName: "Ann Lee"},
		&AddTopicFlow{Step: TopicAskWordCount, Topic: "animals", SourceLanguage: "es", TargetLanguage: "en"},
		&ReviewFlow{SessionID: "s1", Card: Card{ID: "c1", Word: "gato", Translation: "cat", Box: 2}},
		&SupportTicketFlow{Step: TicketConfirm, Subject: "Bug report", Message: "Buttons do nothing"},
	}

	for _, flow := range flows {
		t.Run(string(flow.Kind()), func(t *testing.T) {
			raw, err := json.Marshal(NewConversationState(7, flow, now))
			require.NoError(t, err)

			var got ConversationState
			require.NoError(t, json.Unmarshal(raw, &got))

			assert.Equal(t, int64(7), got.UserID)
			assert.Equal(t, flow.Kind(), got.Kind())
			assert.Equal(t, flow, got.Flow)
		})
	}
}

func TestConversationState_UnknownKind(t *testing.T) {
	var s ConversationState
	err := json.Unmarshal([]byte(`{"user_id":1,"kind":"quiz","data":{}}`), &s)
	assert.ErrorIs(t, err, ErrUnknownFlow)
}

func TestConversationState_NilIsIdle(t *testing.T) {
	var s *ConversationState
	assert.Equal(t, FlowIdle, s.Kind())
}

func TestAddTopicStep_Index(t *testing.T) {
	assert.Equal(t, 0, TopicAskTopic.Index())
	assert.Equal(t, len(AddTopicSteps)-1, TopicConfirm.Index())
	assert.Equal(t, -1, AddTopicStep("nope").Index())
}
