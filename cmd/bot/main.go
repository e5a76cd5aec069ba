package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	_ "time/tzdata" // IANA zones for /timezone on minimal images

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/leitner-vocab-bot/internal/config"
	"github.com/aliskhannn/leitner-vocab-bot/internal/delivery/httpserver"
	"github.com/aliskhannn/leitner-vocab-bot/internal/delivery/telegram"
	"github.com/aliskhannn/leitner-vocab-bot/internal/infra/llm"
	"github.com/aliskhannn/leitner-vocab-bot/internal/infra/postgres"
	"github.com/aliskhannn/leitner-vocab-bot/internal/limiter"
	"github.com/aliskhannn/leitner-vocab-bot/internal/logger"
	"github.com/aliskhannn/leitner-vocab-bot/internal/repository"
	"github.com/aliskhannn/leitner-vocab-bot/internal/service"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped", zap.Error(err))
	}
	lg.Info("shutdown signal received")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	kv, pinger, closeStore, err := openStorage(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if err := telegram.RegisterCommands(bot); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Initialize repositories.
	users := repository.NewUserRepository(kv, lg)
	cards := repository.NewCardRepository(kv, lg)
	sessions := repository.NewSessionRepository(kv, lg)
	states := repository.NewConversationStateStore(kv, lg)
	topics := repository.NewTopicRepository(kv, lg)
	tickets := repository.NewTicketRepository(kv, lg)
	dms := repository.NewDirectMessageRepository(kv, lg)
	assignments := repository.NewAssignmentRepository(kv, lg)

	words := newWordProvider(cfg, lg)
	notifier := telegram.NewNotifier(bot)

	// Initialize services.
	userService := service.NewUserService(users)
	conversationService := service.NewConversationService(states, users, cards, topics, tickets, words, lg)
	reviewService := service.NewReviewService(cards, sessions, states, service.NewAnswerMatcher(), service.ReviewConfig{
		BatchSize:      cfg.Review.BatchSize,
		SessionTimeout: cfg.Review.SessionTimeout,
		SweepSchedule:  cfg.Review.SweepSchedule,
	}, lg)
	cardService := service.NewCardService(cards, topics, words, lg)
	reminderService := service.NewReminderService(users, cards, notifier, cfg.Reminders.Schedule, lg)
	adminService := service.NewAdminService(service.AdminDeps{
		Users:       users,
		Cards:       cards,
		Sessions:    sessions,
		Topics:      topics,
		Tickets:     tickets,
		DMs:         dms,
		Assignments: assignments,
		States:      states,
		Words:       words,
		Notifier:    notifier,
	}, lg)

	handler := telegram.NewHandler(bot, lg, telegram.Services{
		Users:         userService,
		Conversations: conversationService,
		Reviews:       reviewService,
		Cards:         cardService,
		States:        states,
	})

	deps := httpserver.Deps{Admin: adminService, Storage: pinger}
	if cfg.Telegram.Mode == config.ModeWebhook {
		if err := setWebhook(bot, cfg.Telegram); err != nil {
			return err
		}
		deps.Updates = handler
		lg.Info("webhook configured", zap.String("url", cfg.Telegram.WebhookURL))
	} else if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		lg.Warn("failed to delete webhook", zap.Error(err))
	}

	server := httpserver.New(httpserver.Config{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		WebhookSecret:   cfg.Telegram.WebhookSecret,
		AdminToken:      cfg.HTTP.AdminToken,
	}, deps, lg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error { return reminderService.Start(ctx) })
	g.Go(func() error { return reviewService.RunSweeper(ctx) })
	if cfg.Telegram.Mode == config.ModePolling {
		g.Go(func() error { return handler.Run(ctx) })
	}

	return g.Wait()
}

// openStorage returns the key-value store, an optional health pinger and a close function.
func openStorage(
	ctx context.Context,
	cfg *config.Config,
	lg *zap.Logger,
) (storage.KeyValueStore, httpserver.Pinger, func(), error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		lg.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), nil, func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := postgres.Migrate(ctx, dsn); err != nil {
		return nil, nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	lg.Info("postgres storage ready")
	return postgres.NewKVStore(pool), pool, pool.Close, nil
}

// newWordProvider picks the Anthropic provider when a key is configured and rate limits it.
func newWordProvider(cfg *config.Config, lg *zap.Logger) *llm.RateLimited {
	var provider llm.Provider = llm.NewStub()
	if cfg.LLM.APIKey != "" {
		provider = llm.NewAnthropicProvider(llm.Config{
			APIKey:    cfg.LLM.APIKey,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.LLM.Timeout,
		}, lg)
	} else {
		lg.Warn("ANTHROPIC_API_KEY is not set, topics will yield no words")
	}

	return llm.NewRateLimited(provider, limiter.NewFixedWindow(cfg.LLM.RateLimitCalls, cfg.LLM.RateLimitWindow))
}

// setWebhook registers the webhook URL. The library's WebhookConfig has no secret_token, so
// the request is built by hand.
func setWebhook(bot *tgbotapi.BotAPI, cfg config.Telegram) error {
	params := tgbotapi.Params{"url": cfg.WebhookURL}
	params.AddNonEmpty("secret_token", cfg.WebhookSecret)

	if _, err := bot.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
