package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/repository"
)

const msgAssignedWords = "📚 %d new words about \"%s\" were added to your deck."

// AdminService implements the operator API.
type AdminService struct {
	users       UserRepository
	cards       CardRepository
	sessions    SessionRepository
	topics      TopicRepository
	tickets     TicketRepository
	dms         DirectMessageRepository
	assignments AssignmentRepository
	states      ConversationStateStore
	words       WordProvider
	notifier    Notifier
	logger      *zap.Logger
	now         func() time.Time
}

// AdminDeps groups the collaborators of AdminService.
type AdminDeps struct {
	Users       UserRepository
	Cards       CardRepository
	Sessions    SessionRepository
	Topics      TopicRepository
	Tickets     TicketRepository
	DMs         DirectMessageRepository
	Assignments AssignmentRepository
	States      ConversationStateStore
	Words       WordProvider
	Notifier    Notifier
}

func NewAdminService(deps AdminDeps, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:       deps.Users,
		cards:       deps.Cards,
		sessions:    deps.Sessions,
		topics:      deps.Topics,
		tickets:     deps.Tickets,
		dms:         deps.DMs,
		assignments: deps.Assignments,
		states:      deps.States,
		words:       deps.Words,
		notifier:    deps.Notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// ListUsers returns every known user.
func (s *AdminService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.users.List(ctx)
}

// DeleteReport tells how many records a user deletion removed.
type DeleteReport struct {
	Cards          int `json:"cards"`
	Sessions       int `json:"sessions"`
	Topics         int `json:"topics"`
	Tickets        int `json:"tickets"`
	DirectMessages int `json:"direct_messages"`
}

// DeleteUser removes a user together with everything the user owns.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) (DeleteReport, error) {
	var report DeleteReport

	if _, err := s.users.Get(ctx, userID); err != nil {
		return report, err
	}

	var err error
	if report.Cards, err = s.cards.DeleteByUser(ctx, userID); err != nil {
		return report, err
	}
	if report.Sessions, err = s.sessions.DeleteByUser(ctx, userID); err != nil {
		return report, err
	}
	if report.Topics, err = s.topics.DeleteByUser(ctx, userID); err != nil {
		return report, err
	}
	if report.Tickets, err = s.tickets.DeleteByUser(ctx, userID); err != nil {
		return report, err
	}
	if report.DirectMessages, err = s.dms.DeleteByUser(ctx, userID); err != nil {
		return report, err
	}
	if err := s.states.Clear(ctx, userID); err != nil {
		return report, fmt.Errorf("clear state: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return report, err
	}

	s.logger.Info("user deleted",
		zap.Int64("user_id", userID),
		zap.Int("cards", report.Cards),
		zap.Int("sessions", report.Sessions),
	)
	return report, nil
}

// BroadcastResult counts delivery outcomes of a broadcast.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Broadcast sends text to every active registered user. Failures are counted, not fatal.
func (s *AdminService) Broadcast(ctx context.Context, text string) (BroadcastResult, error) {
	var res BroadcastResult

	text = strings.TrimSpace(text)
	if text == "" {
		return res, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return res, err
	}

	for _, u := range users {
		if !u.IsActive || !u.IsRegistrationComplete {
			continue
		}
		if err := s.notifier.Notify(ctx, u.ChatID, entities.NewReply(text)); err != nil {
			s.logger.Warn("broadcast delivery failed", zap.Int64("user_id", u.ID), zap.Error(err))
			res.Failed++
			continue
		}
		res.Sent++
	}

	s.logger.Info("broadcast finished", zap.Int("sent", res.Sent), zap.Int("failed", res.Failed))
	return res, nil
}

// SendDirectMessage delivers text to one user and records the attempt.
func (s *AdminService) SendDirectMessage(ctx context.Context, userID int64, text string) (*entities.DirectMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := &entities.DirectMessage{
		UserID: userID,
		Text:   text,
		Status: entities.DeliverySent,
		SentAt: s.now(),
	}
	if err := s.notifier.Notify(ctx, user.ChatID, entities.NewReply(text)); err != nil {
		msg.Status = entities.DeliveryFailed
		msg.Error = err.Error()
	}

	if err := s.dms.Create(ctx, msg); err != nil {
		return nil, err
	}
	if msg.Status == entities.DeliveryFailed {
		return msg, fmt.Errorf("%w: %s", ErrUserNotDelivered, msg.Error)
	}
	return msg, nil
}

// AssignWordsRequest describes a bulk assignment.
type AssignWordsRequest struct {
	Topic          string  `json:"topic"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	WordLevel      string  `json:"word_level"`
	WordCount      int     `json:"word_count"`
	UserIDs        []int64 `json:"user_ids"`
}

func (r AssignWordsRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Topic) == "":
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	case r.WordCount < minWordCount || r.WordCount > maxWordCount:
		return fmt.Errorf("%w: word_count must be between %d and %d", ErrInvalidInput, minWordCount, maxWordCount)
	case len(r.UserIDs) == 0:
		return fmt.Errorf("%w: user_ids is required", ErrInvalidInput)
	}
	if _, ok := entities.LookupLanguage(r.SourceLanguage); !ok {
		return fmt.Errorf("%w: unknown source_language %q", ErrInvalidInput, r.SourceLanguage)
	}
	if _, ok := entities.LookupLanguage(r.TargetLanguage); !ok {
		return fmt.Errorf("%w: unknown target_language %q", ErrInvalidInput, r.TargetLanguage)
	}
	return nil
}

// AssignWords generates a word list once and gives it to every listed user.
// A failure for one user is counted and recorded; the run goes on with the next user.
func (s *AdminService) AssignWords(ctx context.Context, req AssignWordsRequest) (*entities.BulkWordAssignment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	src, _ := entities.LookupLanguage(req.SourceLanguage)
	tgt, _ := entities.LookupLanguage(req.TargetLanguage)
	level := ""
	if req.WordLevel != "" {
		lvl, ok := entities.ParseWordLevel(req.WordLevel)
		if !ok {
			return nil, fmt.Errorf("%w: unknown word_level %q", ErrInvalidInput, req.WordLevel)
		}
		level = lvl
	}

	a := &entities.BulkWordAssignment{
		Topic:          strings.TrimSpace(req.Topic),
		SourceLanguage: src.Code,
		TargetLanguage: tgt.Code,
		WordLevel:      level,
		WordCount:      req.WordCount,
		UserIDs:        req.UserIDs,
		Status:         entities.AssignmentRunning,
		CreatedAt:      s.now(),
	}
	if err := s.assignments.Save(ctx, a); err != nil {
		return nil, err
	}

	log := s.logger.With(zap.String("assignment_id", a.ID), zap.String("topic", a.Topic))

	words, err := s.words.ExtractWords(ctx, entities.WordRequest{
		Topic:          a.Topic,
		SourceLanguage: a.SourceLanguage,
		TargetLanguage: a.TargetLanguage,
		Count:          a.WordCount,
		WordLevel:      a.WordLevel,
	})
	if err == nil && len(words) == 0 {
		err = ErrNoVocabulary
	}
	if err != nil {
		log.Error("bulk assignment failed", zap.Error(err))
		a.Errors = append(a.Errors, err.Error())
		return a, s.finishAssignment(ctx, a, entities.AssignmentFailed)
	}

	for _, userID := range a.UserIDs {
		if err := s.assignToUser(ctx, userID, a, words); err != nil {
			log.Warn("assignment to user failed", zap.Int64("user_id", userID), zap.Error(err))
			a.ErrorCount++
			a.Errors = append(a.Errors, fmt.Sprintf("user %d: %v", userID, err))
			continue
		}
		a.SuccessCount++
	}

	log.Info("bulk assignment finished",
		zap.Int("success", a.SuccessCount),
		zap.Int("errors", a.ErrorCount),
	)

	status := entities.AssignmentCompleted
	if a.SuccessCount == 0 {
		status = entities.AssignmentFailed
	}
	return a, s.finishAssignment(ctx, a, status)
}

func (s *AdminService) assignToUser(
	ctx context.Context,
	userID int64,
	a *entities.BulkWordAssignment,
	words []entities.ExtractedWord,
) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	created := 0
	var errs []error
	for _, w := range words {
		if !w.Valid() {
			continue
		}
		card := entities.NewCard(userID, w, a.SourceLanguage, a.TargetLanguage, a.Topic, now)
		if _, err := s.cards.Create(ctx, card); err != nil {
			errs = append(errs, err)
			continue
		}
		created++
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d cards failed: %w", len(errs), len(words), errors.Join(errs...))
	}

	topic := &entities.Topic{
		UserID:         userID,
		Name:           a.Topic,
		SourceLanguage: a.SourceLanguage,
		TargetLanguage: a.TargetLanguage,
		WordLevel:      a.WordLevel,
		CardCount:      created,
		CreatedAt:      now,
	}
	if err := s.topics.Create(ctx, topic); err != nil {
		return fmt.Errorf("save topic: %w", err)
	}

	if err := s.notifier.Notify(ctx, user.ChatID, entities.NewReply(fmt.Sprintf(msgAssignedWords, created, a.Topic))); err != nil {
		s.logger.Warn("assignment notification failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *AdminService) finishAssignment(ctx context.Context, a *entities.BulkWordAssignment, status entities.AssignmentStatus) error {
	now := s.now()
	a.Status = status
	a.CompletedAt = &now
	return s.assignments.Save(ctx, a)
}

// ListAssignments returns all bulk assignments, newest first.
func (s *AdminService) ListAssignments(ctx context.Context) ([]*entities.BulkWordAssignment, error) {
	return s.assignments.List(ctx)
}

// ListTickets returns support tickets, optionally only those with status.
func (s *AdminService) ListTickets(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return tickets, nil
	}

	filtered := tickets[:0]
	for _, t := range tickets {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// CloseTicket marks a ticket closed. Closing a closed ticket is a no-op.
func (s *AdminService) CloseTicket(ctx context.Context, userID int64, ticketID string) (*entities.SupportTicket, error) {
	t, err := s.tickets.Get(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if t.Status == entities.TicketClosed {
		return t, nil
	}

	now := s.now()
	t.Status = entities.TicketClosed
	t.ClosedAt = &now
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// IsNotFound reports whether err means the addressed record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrTicketNotFound) ||
		errors.Is(err, repository.ErrCardNotFound) ||
		errors.Is(err, repository.ErrAssignmentNotFound)
}
