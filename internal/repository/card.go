package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/storage"
)

var ErrCardNotFound = errors.New("card not found")

// CardRepository provides access to cards stored under card:{userId}:{cardId}.
type CardRepository struct {
	kv     storage.KeyValueStore
	logger *zap.Logger
	now    func() time.Time
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(kv storage.KeyValueStore, logger *zap.Logger) *CardRepository {
	return &CardRepository{kv: kv, logger: logger, now: time.Now}
}

// Create stores a new card. It assigns the id and timestamps and returns the stored copy.
func (r *CardRepository) Create(ctx context.Context, card *entities.Card) (*entities.Card, error) {
	c := *card
	now := r.now()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.NextReviewAt.IsZero() {
		c.NextReviewAt = now
	}
	c.UpdatedAt = now
	c.Box = entities.ClampBox(c.Box)
	c.CorrectCount = min(c.CorrectCount, c.ReviewCount)

	if err := putJSON(ctx, r.kv, ownedKey(cardPrefix, c.UserID, c.ID), c); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	return &c, nil
}

// Get returns a single card.
func (r *CardRepository) Get(ctx context.Context, userID int64, cardID string) (*entities.Card, error) {
	card, err := getJSON[entities.Card](ctx, r.kv, ownedKey(cardPrefix, userID, cardID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// ListByUser returns the user's cards sorted by next review time.
// A box of 0 returns cards from all boxes.
func (r *CardRepository) ListByUser(ctx context.Context, userID int64, box int) ([]*entities.Card, error) {
	cards, err := listJSON(ctx, r.kv, ownedPrefix(cardPrefix, userID), r.logger, validCard)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	if box != 0 {
		cards = slices.DeleteFunc(cards, func(c *entities.Card) bool {
			return c.Box != box
		})
	}

	sortByNextReview(cards)
	return cards, nil
}

// ListDue returns up to limit cards with nextReviewAt <= now, earliest first.
// A non-positive limit returns all due cards.
func (r *CardRepository) ListDue(ctx context.Context, userID int64, now time.Time, limit int) ([]*entities.Card, error) {
	cards, err := r.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	due := make([]*entities.Card, 0, len(cards))
	for _, c := range cards {
		if !c.IsDue(now) {
			break // sorted by nextReviewAt
		}
		due = append(due, c)
		if limit > 0 && len(due) == limit {
			break
		}
	}

	return due, nil
}

// CountDue returns how many cards are due at now.
func (r *CardRepository) CountDue(ctx context.Context, userID int64, now time.Time) (int, error) {
	due, err := r.ListDue(ctx, userID, now, 0)
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

// Update applies patch to a card and stores it.
func (r *CardRepository) Update(
	ctx context.Context,
	userID int64,
	cardID string,
	patch entities.CardPatch,
) (*entities.Card, error) {
	card, err := r.Get(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	patch.Apply(card)
	card.UpdatedAt = r.now()

	if err := putJSON(ctx, r.kv, ownedKey(cardPrefix, userID, cardID), card); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}

	return card, nil
}

// Save overwrites an existing card, e.g. after it was rescheduled.
func (r *CardRepository) Save(ctx context.Context, card *entities.Card) error {
	if card.ID == "" {
		return fmt.Errorf("save card: %w", ErrCardNotFound)
	}
	card.Box = entities.ClampBox(card.Box)
	if err := putJSON(ctx, r.kv, ownedKey(cardPrefix, card.UserID, card.ID), card); err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// Delete removes a card and reports whether it existed.
func (r *CardRepository) Delete(ctx context.Context, userID int64, cardID string) (bool, error) {
	key := ownedKey(cardPrefix, userID, cardID)

	if _, err := r.kv.Get(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete card: %w", err)
	}

	if err := r.kv.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("delete card: %w", err)
	}
	return true, nil
}

// DeleteByUser removes all cards of a user.
func (r *CardRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	n, err := r.kv.DeletePrefix(ctx, ownedPrefix(cardPrefix, userID))
	if err != nil {
		return 0, fmt.Errorf("delete cards: %w", err)
	}
	return n, nil
}

func validCard(c *entities.Card) bool {
	return c.ID != "" && c.Box >= entities.MinBox && c.Box <= entities.MaxBox
}

func sortByNextReview(cards []*entities.Card) {
	slices.SortStableFunc(cards, func(a, b *entities.Card) int {
		if c := a.NextReviewAt.Compare(b.NextReviewAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
