package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"`      // current application environment (local, dev, production etc)
	Telegram  Telegram  `mapstructure:"telegram"` // bot transport settings
	HTTP      HTTP      `mapstructure:"http"`     // webhook, health and admin API server
	Storage   Storage   `mapstructure:"storage"`  // key-value store backend
	DB        DB        `mapstructure:"database"` // database configuration section
	LLM       LLM       `mapstructure:"llm"`      // word provider settings
	Review    Review    `mapstructure:"review"`
	Reminders Reminders `mapstructure:"reminders"`
}

// Telegram contains bot settings.
type Telegram struct {
	APIToken      string `mapstructure:"-"`           // loaded from TELEGRAM_API_TOKEN
	WebhookSecret string `mapstructure:"-"`           // loaded from TELEGRAM_WEBHOOK_SECRET
	Mode          string `mapstructure:"mode"`        // polling or webhook
	WebhookURL    string `mapstructure:"webhook_url"` // public URL of POST /telegram-webhook
	Debug         bool   `mapstructure:"debug"`
}

// HTTP contains the HTTP server settings.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AdminToken      string        `mapstructure:"-"` // loaded from ADMIN_TOKEN, admin API is off when empty
}

// Storage selects the key-value store implementation.
type Storage struct {
	Driver string `mapstructure:"driver"` // memory or postgres
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// LLM configures the AI word provider. The stub provider is used without an API key.
type LLM struct {
	APIKey          string        `mapstructure:"-"` // loaded from ANTHROPIC_API_KEY
	Model           string        `mapstructure:"model"`
	MaxTokens       int64         `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RateLimitCalls  int           `mapstructure:"rate_limit_calls"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// Review configures review sessions.
type Review struct {
	BatchSize      int           `mapstructure:"batch_size"`
	SessionTimeout time.Duration `mapstructure:"session_timeout"` // 0 keeps sessions active forever
	SweepSchedule  string        `mapstructure:"sweep_schedule"`
}

// Reminders configures the reminder job.
type Reminders struct {
	Schedule string `mapstructure:"schedule"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Variables already set in the environment win over .env.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.mode", ModePolling)
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("llm.model", "claude-sonnet-4-5")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.rate_limit_calls", 10)
	v.SetDefault("llm.rate_limit_window", "1m")
	v.SetDefault("review.batch_size", 10)
	v.SetDefault("review.session_timeout", "0s")
	v.SetDefault("review.sweep_schedule", "*/5 * * * *")
	v.SetDefault("reminders.schedule", "* * * * *")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_webhook_secret", "TELEGRAM_WEBHOOK_SECRET")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("admin_token", "ADMIN_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.Telegram.WebhookSecret = v.GetString("telegram_webhook_secret")
	cfg.DB.URL = v.GetString("database_url")
	cfg.LLM.APIKey = v.GetString("anthropic_api_key")
	cfg.HTTP.AdminToken = v.GetString("admin_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Telegram.APIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	switch c.Telegram.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.Telegram.WebhookURL == "" {
			return fmt.Errorf("%w: telegram.webhook_url is required in webhook mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown telegram.mode %q", ErrInvalidConfig, c.Telegram.Mode)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.LLM.RateLimitCalls <= 0 || c.LLM.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: llm rate limit must be positive", ErrInvalidConfig)
	}
	if c.Review.BatchSize <= 0 {
		return fmt.Errorf("%w: review.batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
