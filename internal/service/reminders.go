package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// ReminderService nudges users whose reminder time has come and who have due cards.
type ReminderService struct {
	users    UserRepository
	cards    CardRepository
	notifier Notifier
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	users UserRepository,
	cards CardRepository,
	notifier Notifier,
	schedule string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		users:    users,
		cards:    cards,
		notifier: notifier,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the reminder loop until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	return runCron(ctx, s.logger, "reminders", s.schedule, s.SendDue)
}

// SendDue sends reminders to everyone whose local time matches one of their reminder times.
func (s *ReminderService) SendDue(ctx context.Context) error {
	now := s.now().UTC().Truncate(time.Minute)

	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	due := make([]*entities.User, 0)
	for _, u := range users {
		if u.IsActive && u.IsRegistrationComplete && u.HasReminderAt(now) {
			due = append(due, u)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sent := s.processBatch(ctx, due, now)

	s.logger.Info("reminders processed",
		zap.Int("candidates", len(due)),
		zap.Int("total_sent", sent),
	)
	return nil
}

// processBatch sends reminders concurrently.
func (s *ReminderService) processBatch(ctx context.Context, users []*entities.User, now time.Time) int {
	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, u := range users {
		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			ok, err := s.processReminder(ctx, u, now)
			if err != nil {
				s.logger.Error("failed to process reminder",
					zap.Int64("user_id", u.ID),
					zap.Error(err))
				return
			}
			if ok {
				mu.Lock()
				sent++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return sent
}

func (s *ReminderService) processReminder(ctx context.Context, u *entities.User, now time.Time) (bool, error) {
	stats, err := s.buildReminderStats(ctx, u.ID, now)
	if err != nil {
		return false, err
	}
	if stats.DueNow == 0 {
		s.logger.Debug("nothing due, reminder skipped", zap.Int64("user_id", u.ID))
		return false, nil
	}

	reply := entities.NewReply(fmt.Sprintf(msgReminder, stats.DueNow)).WithButtons(
		entities.Row(entities.NewButton("📚 Start review", entities.ActionStartReview)),
	)
	if err := s.notifier.Notify(ctx, u.ChatID, reply); err != nil {
		return false, fmt.Errorf("send notification: %w", err)
	}

	s.logger.Info("reminder sent",
		zap.Int64("user_id", u.ID),
		zap.Int("due", stats.DueNow),
	)
	return true, nil
}

func (s *ReminderService) buildReminderStats(ctx context.Context, userID int64, now time.Time) (entities.ReminderStats, error) {
	due, err := s.cards.CountDue(ctx, userID, now)
	if err != nil {
		return entities.ReminderStats{}, fmt.Errorf("count due cards: %w", err)
	}
	return entities.ReminderStats{DueNow: due}, nil
}
