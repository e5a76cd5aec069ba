package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/repository"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

type fakeWords struct {
	words    []entities.ExtractedWord
	err      error
	data     entities.WordData
	dataErr  error
	requests []entities.WordRequest
}

func (f *fakeWords) ExtractWords(_ context.Context, req entities.WordRequest) ([]entities.ExtractedWord, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

func (f *fakeWords) ExtractWordData(context.Context, string, string, string) (entities.WordData, error) {
	return f.data, f.dataErr
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent map[int64][]entities.Reply
	fail map[int64]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: map[int64][]entities.Reply{}, fail: map[int64]error{}}
}

func (n *fakeNotifier) Notify(_ context.Context, chatID int64, reply entities.Reply) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.fail[chatID]; err != nil {
		return err
	}
	n.sent[chatID] = append(n.sent[chatID], reply)
	return nil
}

func (n *fakeNotifier) count(chatID int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent[chatID])
}

type fixture struct {
	kv          *storage.MemoryStore
	users       *repository.UserRepository
	cards       *repository.CardRepository
	sessions    *repository.SessionRepository
	states      *repository.ConversationStateStore
	topics      *repository.TopicRepository
	tickets     *repository.TicketRepository
	dms         *repository.DirectMessageRepository
	assignments *repository.AssignmentRepository
	words       *fakeWords
	notifier    *fakeNotifier
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := storage.NewMemoryStore()
	logger := zap.NewNop()
	return &fixture{
		kv:          kv,
		users:       repository.NewUserRepository(kv, logger),
		cards:       repository.NewCardRepository(kv, logger),
		sessions:    repository.NewSessionRepository(kv, logger),
		states:      repository.NewConversationStateStore(kv, logger),
		topics:      repository.NewTopicRepository(kv, logger),
		tickets:     repository.NewTicketRepository(kv, logger),
		dms:         repository.NewDirectMessageRepository(kv, logger),
		assignments: repository.NewAssignmentRepository(kv, logger),
		words:       &fakeWords{},
		notifier:    newFakeNotifier(),
		now:         time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) conversation() *ConversationService {
	svc := NewConversationService(f.states, f.users, f.cards, f.topics, f.tickets, f.words, zap.NewNop())
	svc.now = f.clock
	return svc
}

func (f *fixture) review(cfg ReviewConfig) *ReviewService {
	svc := NewReviewService(f.cards, f.sessions, f.states, NewAnswerMatcher(), cfg, zap.NewNop())
	svc.now = f.clock
	return svc
}

func (f *fixture) admin() *AdminService {
	svc := NewAdminService(AdminDeps{
		Users:       f.users,
		Cards:       f.cards,
		Sessions:    f.sessions,
		Topics:      f.topics,
		Tickets:     f.tickets,
		DMs:         f.dms,
		Assignments: f.assignments,
		States:      f.states,
		Words:       f.words,
		Notifier:    f.notifier,
	}, zap.NewNop())
	svc.now = f.clock
	return svc
}

func (f *fixture) registeredUser(t *testing.T, id int64) *entities.User {
	t.Helper()
	u := entities.NewUser(id, id*10, f.now)
	u.CompleteRegistration("Test User", "test@example.com", "en")
	require.NoError(t, f.users.Save(context.Background(), u))
	return u
}

func (f *fixture) addCard(t *testing.T, userID int64, word, translation string, dueIn time.Duration) *entities.Card {
	t.Helper()
	c := entities.NewCard(userID, entities.ExtractedWord{Word: word, Translation: translation}, "es", "en", "test", f.now)
	c.NextReviewAt = f.now.Add(dueIn)
	created, err := f.cards.Create(context.Background(), c)
	require.NoError(t, err)
	return created
}

// advance loads the stored state and feeds ev into it.
func (f *fixture) advance(t *testing.T, svc *ConversationService, user *entities.User, ev Event) []entities.Reply {
	t.Helper()
	ctx := context.Background()
	state, err := f.states.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, state, "no active flow")
	replies, err := svc.Advance(ctx, user, state, ev)
	require.NoError(t, err)
	return replies
}

func (f *fixture) state(t *testing.T, userID int64) *entities.ConversationState {
	t.Helper()
	state, err := f.states.Get(context.Background(), userID)
	require.NoError(t, err)
	return state
}

func replyTexts(replies []entities.Reply) string {
	texts := make([]string, 0, len(replies))
	for _, r := range replies {
		texts = append(texts, r.Text)
	}
	return strings.Join(texts, "\n")
}

func act(t entities.ActionType, arg ...string) Event {
	return ActionEvent(entities.NewAction(t, arg...))
}
