package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/config"
)

// New builds the process logger: JSON in production, console output elsewhere.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
