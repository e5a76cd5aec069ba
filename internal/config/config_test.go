package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "123:abc", cfg.Telegram.APIToken)
	assert.Equal(t, ModePolling, cfg.Telegram.Mode)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10, cfg.Review.BatchSize)
	assert.Zero(t, cfg.Review.SessionTimeout)
	assert.Equal(t, "* * * * *", cfg.Reminders.Schedule)
	assert.Equal(t, 10, cfg.LLM.RateLimitCalls)
	assert.Equal(t, time.Minute, cfg.LLM.RateLimitWindow)
	assert.Empty(t, cfg.HTTP.AdminToken)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/bot")
	t.Setenv("TELEGRAM_MODE", "webhook")
	t.Setenv("TELEGRAM_WEBHOOK_URL", "https://bot.example.com/telegram-webhook")
	t.Setenv("TELEGRAM_WEBHOOK_SECRET", "hook")
	t.Setenv("ADMIN_TOKEN", "admin")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("REVIEW_SESSION_TIMEOUT", "2h")
	t.Setenv("REVIEW_BATCH_SIZE", "20")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://bot@localhost/bot", cfg.DB.URL)
	assert.Equal(t, ModeWebhook, cfg.Telegram.Mode)
	assert.Equal(t, "https://bot.example.com/telegram-webhook", cfg.Telegram.WebhookURL)
	assert.Equal(t, "hook", cfg.Telegram.WebhookSecret)
	assert.Equal(t, "admin", cfg.HTTP.AdminToken)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 2*time.Hour, cfg.Review.SessionTimeout)
	assert.Equal(t, 20, cfg.Review.BatchSize)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{
			name: "missing token",
			env:  map[string]string{},
			want: ErrMissingEnvironmentVariables,
		},
		{
			name: "postgres without url",
			env:  map[string]string{"TELEGRAM_API_TOKEN": "t", "STORAGE_DRIVER": "postgres"},
			want: ErrMissingEnvironmentVariables,
		},
		{
			name: "unknown driver",
			env:  map[string]string{"TELEGRAM_API_TOKEN": "t", "STORAGE_DRIVER": "redis"},
			want: ErrInvalidConfig,
		},
		{
			name: "webhook without url",
			env:  map[string]string{"TELEGRAM_API_TOKEN": "t", "TELEGRAM_MODE": "webhook"},
			want: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_API_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(viper.New())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
