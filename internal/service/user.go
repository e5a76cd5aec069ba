package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/repository"
)

// UserInfo is what the messenger tells about the sender of an update.
type UserInfo struct {
	ID        int64
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

type UserService struct {
	repository UserRepository
	now        func() time.Time
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository, now: time.Now}
}

// EnsureUser loads the sender, creating an unregistered user on first contact.
// Every call refreshes the profile fields and the last activity time.
func (s *UserService) EnsureUser(ctx context.Context, info UserInfo) (*entities.User, bool, error) {
	now := s.now()

	user, err := s.repository.Get(ctx, info.ID)
	created := false
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		user = entities.NewUser(info.ID, info.ChatID, now)
		created = true
	case err != nil:
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	user.ChatID = info.ChatID
	user.Username = info.Username
	user.FirstName = info.FirstName
	user.LastName = info.LastName
	user.IsActive = true
	user.LastActiveAt = now

	if err := s.repository.Save(ctx, user); err != nil {
		return nil, false, fmt.Errorf("save user: %w", err)
	}
	return user, created, nil
}

// SetReminderTimes handles "/reminders HH:MM ..." and "/reminders off".
// Without arguments it shows the current setting.
func (s *UserService) SetReminderTimes(ctx context.Context, user *entities.User, args []string) ([]entities.Reply, error) {
	if len(args) == 0 {
		return []entities.Reply{entities.NewReply(fmt.Sprintf(msgRemindersUsage, formatReminderTimes(user.ReminderTimes), user.Timezone))}, nil
	}

	if len(args) == 1 && strings.EqualFold(args[0], "off") {
		user.ReminderTimes = nil
		if err := s.repository.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
		return []entities.Reply{entities.NewReply(msgRemindersOff)}, nil
	}

	times, err := entities.ParseReminderTimes(args)
	if err != nil {
		return []entities.Reply{entities.NewReply(msgRemindersInvalid)}, nil
	}

	user.ReminderTimes = times
	if err := s.repository.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return []entities.Reply{entities.NewReply(fmt.Sprintf(msgRemindersSet, formatReminderTimes(times), user.Timezone))}, nil
}

// SetTimezone handles "/timezone <tz>".
func (s *UserService) SetTimezone(ctx context.Context, user *entities.User, tz string) ([]entities.Reply, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return []entities.Reply{entities.NewReply(fmt.Sprintf(msgTimezoneUsage, user.Timezone))}, nil
	}

	loc, err := entities.ParseTimezone(tz)
	if err != nil {
		return []entities.Reply{entities.NewReply(msgTimezoneInvalid)}, nil
	}

	user.Timezone = loc.String()
	if err := s.repository.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return []entities.Reply{entities.NewReply(fmt.Sprintf(msgTimezoneSet, user.Timezone))}, nil
}

func formatReminderTimes(times []string) string {
	if len(times) == 0 {
		return msgRemindersNoneSet
	}
	return strings.Join(times, ", ")
}
