package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runCron runs job on schedule (UTC) until ctx is cancelled.
func runCron(ctx context.Context, logger *zap.Logger, name, schedule string, job func(context.Context) error) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(schedule, func() {
		logger.Debug("cron triggered", zap.String("job", name))
		if err := job(ctx); err != nil {
			logger.Error("cron job failed", zap.String("job", name), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %s: %w", name, err)
	}

	c.Start()
	logger.Info("cron scheduler started", zap.String("job", name), zap.String("schedule", schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	logger.Info("cron scheduler stopped", zap.String("job", name))

	return nil
}
