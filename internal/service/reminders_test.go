package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReminderService_SendDue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.now = time.Date(2026, 5, 4, 6, 0, 30, 0, time.UTC)

	withDue := f.registeredUser(t, 1)
	withDue.ReminderTimes = []string{"09:00", "21:00"}
	withDue.Timezone = "UTC+3"
	require.NoError(t, f.users.Save(ctx, withDue))
	f.addCard(t, withDue.ID, "perro", "dog", -time.Minute)

	nothingDue := f.registeredUser(t, 2)
	nothingDue.ReminderTimes = []string{"06:00"}
	require.NoError(t, f.users.Save(ctx, nothingDue))
	f.addCard(t, nothingDue.ID, "gato", "cat", time.Hour)

	otherTime := f.registeredUser(t, 3)
	otherTime.ReminderTimes = []string{"07:00"}
	require.NoError(t, f.users.Save(ctx, otherTime))
	f.addCard(t, otherTime.ID, "pez", "fish", -time.Hour)

	inactive := f.registeredUser(t, 4)
	inactive.ReminderTimes = []string{"06:00"}
	inactive.IsActive = false
	require.NoError(t, f.users.Save(ctx, inactive))
	f.addCard(t, inactive.ID, "vaca", "cow", -time.Hour)

	svc := NewReminderService(f.users, f.cards, f.notifier, "* * * * *", zap.NewNop())
	svc.now = f.clock

	require.NoError(t, svc.SendDue(ctx))

	assert.Equal(t, 1, f.notifier.count(withDue.ChatID))
	assert.Zero(t, f.notifier.count(nothingDue.ChatID))
	assert.Zero(t, f.notifier.count(otherTime.ChatID))
	assert.Zero(t, f.notifier.count(inactive.ChatID))

	reply := f.notifier.sent[withDue.ChatID][0]
	assert.Contains(t, reply.Text, "1 cards")
	require.Len(t, reply.Buttons, 1)
}

func TestReminderService_DeliveryFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user := f.registeredUser(t, 1)
	user.ReminderTimes = []string{f.now.Format("15:04")}
	require.NoError(t, f.users.Save(ctx, user))
	f.addCard(t, user.ID, "perro", "dog", 0)
	f.notifier.fail[user.ChatID] = errors.New("bot was blocked")

	svc := NewReminderService(f.users, f.cards, f.notifier, "* * * * *", zap.NewNop())
	svc.now = f.clock

	assert.NoError(t, svc.SendDue(ctx))
}
