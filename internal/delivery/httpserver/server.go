// Package httpserver exposes the Telegram webhook, the health check and the admin API.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/service"
)

// UpdateHandler processes a single Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)
	DeleteUser(ctx context.Context, userID int64) (service.DeleteReport, error)
	Broadcast(ctx context.Context, text string) (service.BroadcastResult, error)
	SendDirectMessage(ctx context.Context, userID int64, text string) (*entities.DirectMessage, error)
	AssignWords(ctx context.Context, req service.AssignWordsRequest) (*entities.BulkWordAssignment, error)
	ListAssignments(ctx context.Context) ([]*entities.BulkWordAssignment, error)
	ListTickets(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error)
	CloseTicket(ctx context.Context, userID int64, ticketID string) (*entities.SupportTicket, error)
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the HTTP settings and secrets.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	WebhookSecret   string // checked against X-Telegram-Bot-Api-Secret-Token when set
	AdminToken      string // admin API is disabled when empty
}

// Deps groups the collaborators of the server. Updates and Storage may be nil.
type Deps struct {
	Updates UpdateHandler
	Admin   AdminService
	Storage Pinger
}

type Server struct {
	cfg     Config
	updates UpdateHandler
	admin   AdminService
	storage Pinger
	logger  *zap.Logger
}

func New(cfg Config, deps Deps, logger *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		updates: deps.Updates,
		admin:   deps.Admin,
		storage: deps.Storage,
		logger:  logger,
	}
}

// Routes builds the HTTP handler with all endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	if s.updates != nil {
		mux.HandleFunc("POST /telegram-webhook", s.webhook)
	}

	if s.cfg.AdminToken != "" && s.admin != nil {
		admin := s.requireToken
		mux.Handle("GET /admin/users", admin(s.listUsers))
		mux.Handle("DELETE /admin/users/{userID}", admin(s.deleteUser))
		mux.Handle("POST /admin/users/{userID}/messages", admin(s.sendDirectMessage))
		mux.Handle("POST /admin/broadcast", admin(s.broadcast))
		mux.Handle("GET /admin/assignments", admin(s.listAssignments))
		mux.Handle("POST /admin/assignments", admin(s.assignWords))
		mux.Handle("GET /admin/tickets", admin(s.listTickets))
		mux.Handle("POST /admin/users/{userID}/tickets/{ticketID}/close", admin(s.closeTicket))
	} else {
		s.logger.Info("admin API disabled")
	}

	return chain(mux, s.recovery, s.logRequests)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
