// Package llm implements word providers backed by a large language model.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// Config holds the model settings of the Anthropic provider.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// AnthropicProvider generates vocabulary with the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	logger    *zap.Logger
}

// NewAnthropicProvider creates a provider using the given API key and model.
func NewAnthropicProvider(cfg Config, logger *zap.Logger) *AnthropicProvider {
	return &AnthropicProvider{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// ExtractWords asks the model for count words on a topic. An unusable answer yields
// an empty slice; only API failures are returned as errors.
func (p *AnthropicProvider) ExtractWords(ctx context.Context, req entities.WordRequest) ([]entities.ExtractedWord, error) {
	text, err := p.complete(ctx, buildWordsPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("extract words for %q: %w", req.Topic, err)
	}

	words, err := parseWords(text, req.Count)
	if err != nil {
		p.logger.Warn("unusable word list from model",
			zap.String("topic", req.Topic),
			zap.Error(err),
		)
		return []entities.ExtractedWord{}, nil
	}

	return words, nil
}

// ExtractWordData looks up a single word. Answers that are not real translations
// come back with LookupFallback.
func (p *AnthropicProvider) ExtractWordData(
	ctx context.Context,
	word, sourceLanguage, targetLanguage string,
) (entities.WordData, error) {
	text, err := p.complete(ctx, buildWordDataPrompt(word, sourceLanguage, targetLanguage))
	if err != nil {
		return entities.WordData{Status: entities.LookupError}, fmt.Errorf("look up %q: %w", word, err)
	}

	return parseWordData(word, text), nil
}

func (p *AnthropicProvider) complete(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty llm response")
	}
	return sb.String(), nil
}

func buildWordsPrompt(req entities.WordRequest) string {
	descLang := req.DescriptionLanguage
	if descLang == "" {
		descLang = req.TargetLanguage
	}
	level := req.WordLevel
	if level == "" {
		level = "any"
	}

	return fmt.Sprintf(`You are a vocabulary teacher.

Pick %d useful %s words or short phrases about the topic "%s".
Learner level (CEFR): %s.
For each item give its translation into %s, a one-sentence definition written in %s
and a short example sentence in %s.

Output ONLY a JSON array, no comments:
[{"word": "...", "translation": "...", "definition": "...", "context": "..."}]

If the topic makes no sense, output [].`,
		req.Count,
		entities.LanguageName(req.SourceLanguage),
		req.Topic,
		level,
		entities.LanguageName(req.TargetLanguage),
		entities.LanguageName(descLang),
		entities.LanguageName(req.SourceLanguage),
	)
}

func buildWordDataPrompt(word, sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf(`Translate the %s word "%s" into %s.

Output ONLY a JSON object:
{"found": true, "translation": "...", "definition": "..."}

The definition is one short sentence in %s.
If the word does not exist or you are not sure, output {"found": false}.`,
		entities.LanguageName(sourceLanguage),
		word,
		entities.LanguageName(targetLanguage),
		entities.LanguageName(targetLanguage),
	)
}

// parseWords reads the JSON array out of a model answer and keeps at most count valid items.
func parseWords(text string, count int) ([]entities.ExtractedWord, error) {
	raw, err := extractJSON(text, '[', ']')
	if err != nil {
		return nil, err
	}

	var items []entities.ExtractedWord
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}

	words := make([]entities.ExtractedWord, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, w := range items {
		w.Word = strings.TrimSpace(w.Word)
		w.Translation = strings.TrimSpace(w.Translation)
		if !w.Valid() {
			continue
		}
		key := strings.ToLower(w.Word)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, w)
		if count > 0 && len(words) == count {
			break
		}
	}

	return words, nil
}

type wordDataResponse struct {
	Found       bool   `json:"found"`
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
}

// parseWordData turns a model answer into WordData. Anything that is not a usable
// translation of word is reported as LookupFallback.
func parseWordData(word, text string) entities.WordData {
	fallback := entities.WordData{Status: entities.LookupFallback}

	raw, err := extractJSON(text, '{', '}')
	if err != nil {
		return fallback
	}

	var resp wordDataResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return fallback
	}

	translation := strings.TrimSpace(resp.Translation)
	if !resp.Found || translation == "" || strings.EqualFold(translation, strings.TrimSpace(word)) {
		return fallback
	}

	return entities.WordData{
		Translation: translation,
		Definition:  strings.TrimSpace(resp.Definition),
		Status:      entities.LookupOK,
	}
}

// extractJSON returns the text between the first open and the last close delimiter.
func extractJSON(s string, first, last byte) (string, error) {
	start := strings.IndexByte(s, first)
	end := strings.LastIndexByte(s, last)
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON found in response")
	}
	return s[start : end+1], nil
}
