package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/repository"
	"github.com/aliskhannn/leitner-vocab-bot/internal/service"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	sendErr  error
	updates  chan tgbotapi.Update
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {}

// messages returns the sent messages and forgets them.
func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	b.sent = nil
	return out
}

func texts(msgs []tgbotapi.MessageConfig) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n---\n")
}

type fakeWords struct {
	words []entities.ExtractedWord
}

func (f *fakeWords) ExtractWords(context.Context, entities.WordRequest) ([]entities.ExtractedWord, error) {
	return f.words, nil
}

func (f *fakeWords) ExtractWordData(context.Context, string, string, string) (entities.WordData, error) {
	return entities.WordData{Status: entities.LookupFallback}, nil
}

type env struct {
	bot     *fakeBot
	handler *Handler
	logs    *observer.ObservedLogs
	users   *repository.UserRepository
	cards   *repository.CardRepository
	states  *repository.ConversationStateStore
	words   *fakeWords
}

func newEnv(t *testing.T) *env {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	kv := storage.NewMemoryStore()

	users := repository.NewUserRepository(kv, logger)
	cards := repository.NewCardRepository(kv, logger)
	sessions := repository.NewSessionRepository(kv, logger)
	states := repository.NewConversationStateStore(kv, logger)
	topics := repository.NewTopicRepository(kv, logger)
	tickets := repository.NewTicketRepository(kv, logger)
	words := &fakeWords{}

	bot := &fakeBot{updates: make(chan tgbotapi.Update)}
	handler := NewHandler(bot, logger, Services{
		Users:         service.NewUserService(users),
		Conversations: service.NewConversationService(states, users, cards, topics, tickets, words, logger),
		Reviews: service.NewReviewService(
			cards, sessions, states, service.NewAnswerMatcher(), service.ReviewConfig{BatchSize: 10}, logger,
		),
		Cards:  service.NewCardService(cards, topics, words, logger),
		States: states,
	})

	return &env{
		bot:     bot,
		handler: handler,
		logs:    logs,
		users:   users,
		cards:   cards,
		states:  states,
		words:   words,
	}
}

func chatOf(userID int64) int64 { return userID * 10 }

func (e *env) text(userID int64, text string) []tgbotapi.MessageConfig {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, FirstName: "Anna"},
		Chat:      &tgbotapi.Chat{ID: chatOf(userID)},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		cmd, _, _ := strings.Cut(text, " ")
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}

	e.handler.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 1, Message: msg})
	return e.bot.messages()
}

func (e *env) press(userID int64, data string) []tgbotapi.MessageConfig {
	e.handler.HandleUpdate(context.Background(), tgbotapi.Update{
		UpdateID: 2,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: &tgbotapi.User{ID: userID},
			Message: &tgbotapi.Message{
				MessageID: 5,
				Chat:      &tgbotapi.Chat{ID: chatOf(userID)},
			},
			Data: data,
		},
	})
	return e.bot.messages()
}

func (e *env) registered(t *testing.T, userID int64) *entities.User {
	t.Helper()
	user := entities.NewUser(userID, chatOf(userID), time.Now())
	user.CompleteRegistration("Anna Smith", "anna@mail.com", "en")
	require.NoError(t, e.users.Save(context.Background(), user))
	return user
}

func (e *env) addCard(t *testing.T, userID int64, word, translation string) *entities.Card {
	t.Helper()
	card, err := e.cards.Create(context.Background(), entities.NewCard(
		userID,
		entities.ExtractedWord{Word: word, Translation: translation},
		"es", "en", "",
		time.Now().Add(-time.Hour),
	))
	require.NoError(t, err)
	return card
}

func (e *env) state(t *testing.T, userID int64) *entities.ConversationState {
	t.Helper()
	state, err := e.states.Get(context.Background(), userID)
	require.NoError(t, err)
	return state
}

// callbackDatas returns all callback_data values of an inline keyboard message.
func callbackDatas(msg tgbotapi.MessageConfig) []string {
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		return nil
	}
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}
