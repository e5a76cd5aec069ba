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

// ReviewConfig tunes review sessions.
type ReviewConfig struct {
	BatchSize      int           // cards per session
	SessionTimeout time.Duration // idle time after which a session is abandoned, 0 disables
	SweepSchedule  string        // cron schedule of the stale session sweep
}

const defaultBatchSize = 10

// ReviewService drives study sessions: it presents due cards, grades answers
// with the Leitner schedule and keeps session counters.
type ReviewService struct {
	cards    CardRepository
	sessions SessionRepository
	states   ConversationStateStore
	matcher  *AnswerMatcher
	cfg      ReviewConfig
	logger   *zap.Logger
	now      func() time.Time
}

func NewReviewService(
	cards CardRepository,
	sessions SessionRepository,
	states ConversationStateStore,
	matcher *AnswerMatcher,
	cfg ReviewConfig,
	logger *zap.Logger,
) *ReviewService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &ReviewService{
		cards:    cards,
		sessions: sessions,
		states:   states,
		matcher:  matcher,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start resumes the user's active session or opens a new one when cards are due.
func (s *ReviewService) Start(ctx context.Context, userID int64) ([]entities.Reply, error) {
	now := s.now()

	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session != nil && session.IsStale(now, s.cfg.SessionTimeout) {
		if err := s.abandon(ctx, session, now); err != nil {
			return nil, err
		}
		session = nil
	}

	if session != nil {
		return s.next(ctx, session, now)
	}

	due, err := s.cards.ListDue(ctx, userID, now, s.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	if len(due) == 0 {
		return s.nothingDue(ctx, userID, now)
	}

	session = entities.NewReviewSession(userID, now)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("review session started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Int("due", len(due)),
	)

	return s.present(ctx, session, due[0], len(due), now)
}

// Continue presents the next due card or ends the session when the batch is done.
func (s *ReviewService) Continue(ctx context.Context, userID int64) ([]entities.Reply, error) {
	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return []entities.Reply{entities.NewReply(msgReviewNoSession)}, nil
	}
	return s.next(ctx, session, s.now())
}

// ShowAnswer reveals the translation of the presented card and offers self-grading.
func (s *ReviewService) ShowAnswer(ctx context.Context, userID int64, cardID string) ([]entities.Reply, error) {
	flow, replies, err := s.presented(ctx, userID, cardID)
	if flow == nil || err != nil {
		return replies, err
	}

	card := flow.Card
	text := fmt.Sprintf(msgReviewAnswer, card.Word, card.Translation)
	if card.Definition != "" {
		text += "\n\n📖 " + card.Definition
	}
	if card.Context != "" {
		text += "\n💬 " + card.Context
	}

	return []entities.Reply{entities.NewReply(text).WithButtons(entities.Row(
		entities.NewButton("✅ I knew it", entities.ActionReviewCorrect, card.ID),
		entities.NewButton("❌ I didn't", entities.ActionReviewIncorrect, card.ID),
	))}, nil
}

// Grade records a self-graded answer for the presented card.
func (s *ReviewService) Grade(ctx context.Context, userID int64, cardID string, isCorrect bool) ([]entities.Reply, error) {
	flow, replies, err := s.presented(ctx, userID, cardID)
	if flow == nil || err != nil {
		return replies, err
	}

	header := msgReviewIncorrect
	if isCorrect {
		header = msgReviewCorrect
	}
	return s.Answer(ctx, userID, flow, isCorrect, header)
}

// AnswerText grades a typed translation of the presented card.
func (s *ReviewService) AnswerText(ctx context.Context, userID int64, flow *entities.ReviewFlow, text string) ([]entities.Reply, error) {
	res := s.matcher.Match(text, flow.Card.Translation)

	header := msgReviewCorrect
	switch {
	case res.Correct():
	case res.Close:
		header = msgReviewIncorrect + " " + msgReviewClose
	default:
		header = msgReviewIncorrect
	}

	return s.Answer(ctx, userID, flow, res.Correct(), header)
}

// Answer applies the Leitner schedule to the presented card, persists it and bumps
// the session counters. A card that no longer exists is reported without touching the session.
func (s *ReviewService) Answer(
	ctx context.Context,
	userID int64,
	flow *entities.ReviewFlow,
	isCorrect bool,
	header string,
) ([]entities.Reply, error) {
	now := s.now()
	nav := entities.Row(
		entities.NewButton("➡️ Next", entities.ActionReviewNext),
		entities.NewButton("🏁 End", entities.ActionReviewEnd),
	)

	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.ID != flow.SessionID {
		if err := s.states.Clear(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear review state: %w", err)
		}
		return []entities.Reply{entities.NewReply(msgReviewNoSession)}, nil
	}

	card, err := s.cards.Get(ctx, userID, flow.Card.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrCardNotFound) {
			return nil, fmt.Errorf("load card: %w", err)
		}
		s.logger.Warn("reviewed card not found",
			zap.Int64("user_id", userID),
			zap.String("card_id", flow.Card.ID),
		)
		if err := s.states.Clear(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear review state: %w", err)
		}
		return []entities.Reply{entities.NewReply(msgReviewCardNotFound).WithButtons(nav)}, nil
	}

	updated := card.ProcessReview(isCorrect, now)
	if err := s.cards.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save reviewed card: %w", err)
	}

	session.RecordAnswer(isCorrect, now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if err := s.states.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear review state: %w", err)
	}

	s.logger.Debug("card reviewed",
		zap.Int64("user_id", userID),
		zap.String("card_id", card.ID),
		zap.Bool("correct", isCorrect),
		zap.Int("box", updated.Box),
	)

	text := fmt.Sprintf(msgReviewResult,
		header,
		card.Word,
		card.Translation,
		card.Box,
		updated.Box,
		formatInterval(entities.IntervalDays(updated.Box)),
	)
	return []entities.Reply{entities.NewReply(text).WithButtons(nav)}, nil
}

// End completes the active session and reports its summary.
func (s *ReviewService) End(ctx context.Context, userID int64) ([]entities.Reply, error) {
	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.clearReviewState(ctx, userID); err != nil {
		return nil, err
	}
	if session == nil {
		return []entities.Reply{entities.NewReply(msgReviewNoSession)}, nil
	}
	return s.finish(ctx, session, s.now())
}

// InProgress reminds the user to use the review buttons when a session is active.
// It returns no replies when there is no active session.
func (s *ReviewService) InProgress(ctx context.Context, userID int64) ([]entities.Reply, error) {
	session, err := s.activeSession(ctx, userID)
	if err != nil || session == nil {
		return nil, err
	}
	return []entities.Reply{entities.NewReply(msgReviewUseButtons).WithButtons(entities.Row(
		entities.NewButton("➡️ Next", entities.ActionReviewNext),
		entities.NewButton("🏁 End", entities.ActionReviewEnd),
	))}, nil
}

// Summary returns the outcome of a finished or running session.
func (s *ReviewService) Summary(ctx context.Context, session *entities.ReviewSession) (entities.SessionSummary, error) {
	cards, err := s.cards.ListByUser(ctx, session.UserID, 0)
	if err != nil {
		return entities.SessionSummary{}, fmt.Errorf("list cards: %w", err)
	}
	stats := entities.NewCardStats(cards, s.now())

	return entities.SessionSummary{
		Session:         *session,
		Accuracy:        session.Accuracy(),
		BoxDistribution: stats.BoxDistribution,
	}, nil
}

// AbandonStale marks every active session idle for longer than the timeout as abandoned.
func (s *ReviewService) AbandonStale(ctx context.Context) (int, error) {
	if s.cfg.SessionTimeout <= 0 {
		return 0, nil
	}

	sessions, err := s.sessions.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active sessions: %w", err)
	}

	now := s.now()
	abandoned := 0
	for _, session := range sessions {
		if !session.IsStale(now, s.cfg.SessionTimeout) {
			continue
		}
		if err := s.abandon(ctx, session, now); err != nil {
			s.logger.Error("failed to abandon session",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
			continue
		}
		abandoned++
	}

	if abandoned > 0 {
		s.logger.Info("stale sessions abandoned", zap.Int("count", abandoned))
	}
	return abandoned, nil
}

// RunSweeper abandons stale sessions on the configured schedule until ctx is done.
// It returns immediately when sessions never go stale.
func (s *ReviewService) RunSweeper(ctx context.Context) error {
	if s.cfg.SessionTimeout <= 0 {
		s.logger.Info("stale session sweep disabled")
		return nil
	}
	return runCron(ctx, s.logger, "session_sweep", s.cfg.SweepSchedule, func(ctx context.Context) error {
		_, err := s.AbandonStale(ctx)
		return err
	})
}

func (s *ReviewService) next(ctx context.Context, session *entities.ReviewSession, now time.Time) ([]entities.Reply, error) {
	remaining := s.cfg.BatchSize - session.CardsReviewed
	if remaining <= 0 {
		return s.finish(ctx, session, now)
	}

	due, err := s.cards.ListDue(ctx, session.UserID, now, remaining)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	if len(due) == 0 {
		return s.finish(ctx, session, now)
	}

	return s.present(ctx, session, due[0], len(due), now)
}

// present stores card as the presented one and renders it. The position counts
// answered cards plus the cards still due, so the total shrinks as cards leave the queue.
func (s *ReviewService) present(
	ctx context.Context,
	session *entities.ReviewSession,
	card *entities.Card,
	dueCount int,
	now time.Time,
) ([]entities.Reply, error) {
	flow := &entities.ReviewFlow{SessionID: session.ID, Card: *card}
	if err := s.states.Save(ctx, entities.NewConversationState(session.UserID, flow, now)); err != nil {
		return nil, fmt.Errorf("save review state: %w", err)
	}

	session.Touch(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	position := session.CardsReviewed + 1
	total := session.CardsReviewed + dueCount

	word := card.Word
	if lang, ok := entities.LookupLanguage(card.SourceLanguage); ok {
		word = lang.Flag + " " + word
	}

	text := fmt.Sprintf(msgReviewCard, position, total, card.Box, word)
	return []entities.Reply{entities.NewReply(text).WithButtons(entities.Row(
		entities.NewButton("👀 Show answer", entities.ActionShowAnswer, card.ID),
		entities.NewButton("🏁 End", entities.ActionReviewEnd),
	))}, nil
}

func (s *ReviewService) finish(ctx context.Context, session *entities.ReviewSession, now time.Time) ([]entities.Reply, error) {
	session.Complete(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	if err := s.clearReviewState(ctx, session.UserID); err != nil {
		return nil, err
	}

	summary, err := s.Summary(ctx, session)
	if err != nil {
		return nil, err
	}

	s.logger.Info("review session completed",
		zap.Int64("user_id", session.UserID),
		zap.String("session_id", session.ID),
		zap.Int("reviewed", session.CardsReviewed),
		zap.Int("correct", session.CorrectAnswers),
	)

	text := fmt.Sprintf(msgReviewSummary,
		session.CardsReviewed,
		session.CorrectAnswers,
		summary.Accuracy*100,
		formatBoxDistribution(summary.BoxDistribution),
	)
	return []entities.Reply{entities.NewReply(text)}, nil
}

func (s *ReviewService) nothingDue(ctx context.Context, userID int64, now time.Time) ([]entities.Reply, error) {
	cards, err := s.cards.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if len(cards) == 0 {
		return []entities.Reply{entities.NewReply(msgReviewNoCards)}, nil
	}

	stats := entities.NewCardStats(cards, now)
	text := msgReviewAllCaughtUp + "\n\n" + formatBoxDistribution(stats.BoxDistribution)
	if stats.NextReviewAt != nil {
		text += fmt.Sprintf(msgStatsNextReview, stats.NextReviewAt.UTC().Format("Jan 2, 15:04 MST"))
	}
	return []entities.Reply{entities.NewReply(text)}, nil
}

// presented returns the review flow when cardID is the card currently presented.
// Otherwise it returns the replies that explain why nothing happened.
func (s *ReviewService) presented(
	ctx context.Context, userID int64, cardID string,
) (*entities.ReviewFlow, []entities.Reply, error) {
	state, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get review state: %w", err)
	}

	flow, ok := reviewFlow(state)
	if ok && flow.Card.ID == cardID {
		return flow, nil, nil
	}

	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, []entities.Reply{entities.NewReply(msgReviewNoSession)}, nil
	}
	return nil, []entities.Reply{entities.NewReply(msgReviewAlreadyGraded)}, nil
}

func (s *ReviewService) activeSession(ctx context.Context, userID int64) (*entities.ReviewSession, error) {
	session, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return session, nil
}

func (s *ReviewService) abandon(ctx context.Context, session *entities.ReviewSession, now time.Time) error {
	session.Abandon(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("abandon session: %w", err)
	}

	state, err := s.states.Get(ctx, session.UserID)
	if err != nil {
		return fmt.Errorf("get review state: %w", err)
	}
	if flow, ok := reviewFlow(state); ok && flow.SessionID == session.ID {
		if err := s.states.Clear(ctx, session.UserID); err != nil {
			return fmt.Errorf("clear review state: %w", err)
		}
	}

	s.logger.Info("review session abandoned",
		zap.Int64("user_id", session.UserID),
		zap.String("session_id", session.ID),
	)
	return nil
}

// clearReviewState drops a pending review card but leaves other flows alone.
func (s *ReviewService) clearReviewState(ctx context.Context, userID int64) error {
	state, err := s.states.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get review state: %w", err)
	}
	if _, ok := reviewFlow(state); !ok {
		return nil
	}
	if err := s.states.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear review state: %w", err)
	}
	return nil
}

func reviewFlow(state *entities.ConversationState) (*entities.ReviewFlow, bool) {
	if state == nil {
		return nil, false
	}
	flow, ok := state.Flow.(*entities.ReviewFlow)
	return flow, ok
}

func formatBoxDistribution(dist map[int]int) string {
	var sb strings.Builder
	sb.WriteString(msgBoxDistribution)
	for b := entities.MinBox; b <= entities.MaxBox; b++ {
		fmt.Fprintf(&sb, msgBoxDistributionLn, b, formatInterval(entities.IntervalDays(b)), dist[b])
	}
	return sb.String()
}

func formatInterval(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
