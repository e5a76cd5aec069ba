package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// manualSeparators split "/add word - translation" into its parts.
var manualSeparators = []string{" - ", " — ", " – ", "="}

// CardService handles single-card commands and deck statistics.
type CardService struct {
	cards  CardRepository
	topics TopicRepository
	words  WordProvider
	logger *zap.Logger
	now    func() time.Time
}

func NewCardService(cards CardRepository, topics TopicRepository, words WordProvider, logger *zap.Logger) *CardService {
	return &CardService{
		cards:  cards,
		topics: topics,
		words:  words,
		logger: logger,
		now:    time.Now,
	}
}

// AddWord creates a card from "word" (translated by the word provider) or
// from "word - translation". Languages are taken from the user's latest topic.
func (s *CardService) AddWord(ctx context.Context, userID int64, input string) ([]entities.Reply, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []entities.Reply{entities.NewReply(msgAddUsage)}, nil
	}

	word, translation, explicit := splitManualWord(input)
	if word == "" || (explicit && translation == "") {
		return []entities.Reply{entities.NewReply(msgAddUsage)}, nil
	}

	topics, err := s.topics.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	var source, target string
	if len(topics) > 0 {
		source, target = topics[0].SourceLanguage, topics[0].TargetLanguage
	}

	item := entities.ExtractedWord{Word: word, Translation: translation}
	if !explicit {
		if source == "" {
			return []entities.Reply{entities.NewReply(msgAddNoLanguages)}, nil
		}

		data, err := s.words.ExtractWordData(ctx, word, source, target)
		if err != nil {
			s.logger.Error("word lookup failed", zap.String("word", word), zap.Error(err))
			return []entities.Reply{entities.NewReply(fmt.Sprintf(msgAddProviderFail, err))}, nil
		}
		if data.Status != entities.LookupOK {
			return []entities.Reply{entities.NewReply(fmt.Sprintf(msgAddLookupFailed, word, word))}, nil
		}
		item.Translation = data.Translation
		item.Definition = data.Definition
	}

	card, err := s.cards.Create(ctx, entities.NewCard(userID, item, source, target, "", s.now()))
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	return []entities.Reply{entities.NewReply(fmt.Sprintf(msgCardAdded, card.Word, card.Translation)).WithButtons(
		entities.Row(entities.NewButton("📚 Start review", entities.ActionStartReview)),
	)}, nil
}

func splitManualWord(input string) (word, translation string, explicit bool) {
	// Padding lets "word -" and "- translation" hit a separator too.
	padded := " " + input + " "
	for _, sep := range manualSeparators {
		if before, after, ok := strings.Cut(padded, sep); ok {
			return strings.TrimSpace(before), strings.TrimSpace(after), true
		}
	}
	return input, "", false
}

// Stats reports the deck statistics of a user.
func (s *CardService) Stats(ctx context.Context, userID int64) ([]entities.Reply, error) {
	cards, err := s.cards.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if len(cards) == 0 {
		return []entities.Reply{entities.NewReply(msgReviewNoCards)}, nil
	}

	stats := entities.NewCardStats(cards, s.now())
	text := fmt.Sprintf(msgStats, stats.TotalCards, stats.DueNow, formatBoxDistribution(stats.BoxDistribution))
	if stats.NextReviewAt != nil {
		text += fmt.Sprintf(msgStatsNextReview, stats.NextReviewAt.UTC().Format("Jan 2, 15:04 MST"))
	}

	reply := entities.NewReply(text)
	if stats.DueNow > 0 {
		reply = reply.WithButtons(entities.Row(entities.NewButton("📚 Start review", entities.ActionStartReview)))
	}
	return []entities.Reply{reply}, nil
}

// Topics lists the topics of a user, newest first.
func (s *CardService) Topics(ctx context.Context, userID int64) ([]entities.Reply, error) {
	topics, err := s.topics.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if len(topics) == 0 {
		return []entities.Reply{entities.NewReply(msgNoTopics).WithButtons(
			entities.Row(entities.NewButton("➕ Add topic", entities.ActionAddTopic)),
		)}, nil
	}

	var sb strings.Builder
	sb.WriteString(msgTopicsHeader)
	for _, t := range topics {
		fmt.Fprintf(&sb, msgTopicsLine,
			t.Name,
			entities.LanguageName(t.SourceLanguage),
			entities.LanguageName(t.TargetLanguage),
			t.CardCount,
		)
	}
	return []entities.Reply{entities.NewReply(sb.String())}, nil
}
