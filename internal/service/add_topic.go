package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

const (
	minTopicLength = 2
	maxTopicLength = 100
	minWordCount   = 1
	maxWordCount   = 100
)

var (
	topicSuggestions = []string{"Travel", "Food", "Work", "Family", "Sports", "Technology"}
	wordCountChoices = []int{5, 10, 15, 20}
)

// addTopicInputs maps every input step to the button action it accepts.
var addTopicInputs = map[entities.AddTopicStep]entities.ActionType{
	entities.TopicAskTopic:               entities.ActionSetTopic,
	entities.TopicAskSourceLanguage:      entities.ActionSetSourceLang,
	entities.TopicAskTargetLanguage:      entities.ActionSetTargetLang,
	entities.TopicAskDescriptionLanguage: entities.ActionSetDescLang,
	entities.TopicAskWordLevel:           entities.ActionSetWordLevel,
	entities.TopicAskWordCount:           entities.ActionSetWordCount,
}

func (s *ConversationService) stepAddTopic(
	ctx context.Context,
	user *entities.User,
	f *entities.AddTopicFlow,
	ev Event,
) (stepResult, error) {
	if ev.IsCancel() {
		return done(entities.NewReply(msgTopicCancelled).WithMainMenu()), nil
	}
	if ev.Action != nil && ev.Action.Type == entities.ActionBack {
		return backAddTopic(f, entities.AddTopicStep(ev.Action.Arg)), nil
	}
	if ev.IsCommand() {
		return stay(f, entities.NewReply(msgFinishFlowFirst), addTopicPrompt(f)), nil
	}

	if f.Step == entities.TopicConfirm {
		switch ev.confirm(entities.ActionConfirmAddTopic, entities.ActionCancelAddTopic) {
		case confirmYes:
			return s.executeAddTopic(ctx, user, f), nil
		case confirmNo:
			return done(entities.NewReply(msgTopicCancelled).WithMainMenu()), nil
		default:
			return stay(f, addTopicPrompt(f)), nil
		}
	}

	accept, ok := addTopicInputs[f.Step]
	if !ok {
		fresh := entities.NewAddTopicFlow()
		return stay(fresh, addTopicPrompt(fresh)), nil
	}

	value, ok := ev.input(accept)
	if !ok {
		return stay(f, entities.NewReply(msgUseButtonsOrType), addTopicPrompt(f)), nil
	}
	if msg := applyAddTopicInput(f, value); msg != "" {
		return stay(f, entities.NewReply(msg), addTopicPrompt(f)), nil
	}

	f.Step = nextAddTopicStep(f)
	return stay(f, addTopicPrompt(f)), nil
}

// applyAddTopicInput stores value into the field of the current step and returns
// a validation message when the value is rejected.
func applyAddTopicInput(f *entities.AddTopicFlow, value string) string {
	switch f.Step {
	case entities.TopicAskTopic:
		n := utf8.RuneCountInString(value)
		if n < minTopicLength || n > maxTopicLength {
			return msgTopicInvalid
		}
		f.Topic = value

	case entities.TopicAskSourceLanguage:
		lang, ok := entities.LookupLanguage(value)
		if !ok {
			return msgTopicUnknownLanguage
		}
		if lang.Code == f.TargetLanguage {
			return msgTopicSameLanguage
		}
		f.SourceLanguage = lang.Code

	case entities.TopicAskTargetLanguage:
		lang, ok := entities.LookupLanguage(value)
		if !ok {
			return msgTopicUnknownLanguage
		}
		if lang.Code == f.SourceLanguage {
			return msgTopicSameLanguage
		}
		f.TargetLanguage = lang.Code

	case entities.TopicAskDescriptionLanguage:
		lang, ok := entities.LookupLanguage(value)
		if !ok {
			return msgTopicUnknownLanguage
		}
		f.DescriptionLanguage = lang.Code

	case entities.TopicAskWordLevel:
		lvl, ok := entities.ParseWordLevel(value)
		if !ok {
			return msgTopicInvalidLevel
		}
		f.WordLevel = lvl

	case entities.TopicAskWordCount:
		n, err := parseWordCount(value)
		if err != nil || n < minWordCount || n > maxWordCount {
			return msgTopicInvalidCount
		}
		f.WordCount = n
	}

	return ""
}

// parseWordCount accepts plain digits only, so "+5" and "-1" are rejected like "ten".
func parseWordCount(s string) (int, error) {
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// nextAddTopicStep returns the first step after the current one that still has no
// answer. Once every answer is present, including after a back jump, that is confirm.
func nextAddTopicStep(f *entities.AddTopicFlow) entities.AddTopicStep {
	for _, step := range entities.AddTopicSteps[f.Step.Index()+1:] {
		if step == entities.TopicConfirm || !addTopicAnswered(f, step) {
			return step
		}
	}
	return entities.TopicConfirm
}

func addTopicAnswered(f *entities.AddTopicFlow, step entities.AddTopicStep) bool {
	switch step {
	case entities.TopicAskTopic:
		return f.Topic != ""
	case entities.TopicAskSourceLanguage:
		return f.SourceLanguage != ""
	case entities.TopicAskTargetLanguage:
		return f.TargetLanguage != ""
	case entities.TopicAskDescriptionLanguage:
		return f.DescriptionLanguage != ""
	case entities.TopicAskWordLevel:
		return f.WordLevel != ""
	case entities.TopicAskWordCount:
		return f.WordCount > 0
	}
	return false
}

// backAddTopic jumps to an earlier step. Unknown or forward targets re-show the current prompt.
func backAddTopic(f *entities.AddTopicFlow, target entities.AddTopicStep) stepResult {
	idx := target.Index()
	if idx < 0 || idx >= f.Step.Index() {
		return stay(f, addTopicPrompt(f))
	}
	f.Step = target
	return stay(f, addTopicPrompt(f))
}

func (s *ConversationService) executeAddTopic(ctx context.Context, user *entities.User, f *entities.AddTopicFlow) stepResult {
	log := s.logger.With(zap.Int64("user_id", user.ID), zap.String("topic", f.Topic))

	words, err := s.words.ExtractWords(ctx, f.Request())
	if err != nil {
		log.Error("failed to extract words", zap.Error(err))
		return done(entities.NewReply(fmt.Sprintf(msgTopicProviderFailed, err)).WithMainMenu())
	}
	if len(words) == 0 {
		return done(entities.NewReply(fmt.Sprintf(msgTopicNoVocabulary, f.Topic)).WithMainMenu())
	}

	now := s.now()
	created := 0
	for _, w := range words {
		if !w.Valid() {
			continue
		}
		card := entities.NewCard(user.ID, w, f.SourceLanguage, f.TargetLanguage, f.Topic, now)
		if _, err := s.cards.Create(ctx, card); err != nil {
			log.Warn("failed to create card", zap.String("word", w.Word), zap.Error(err))
			continue
		}
		created++
	}

	if created == 0 {
		return done(entities.NewReply(msgTopicCardsNotSaved).WithMainMenu())
	}

	topic := &entities.Topic{
		UserID:         user.ID,
		Name:           f.Topic,
		SourceLanguage: f.SourceLanguage,
		TargetLanguage: f.TargetLanguage,
		WordLevel:      f.WordLevel,
		CardCount:      created,
		CreatedAt:      now,
	}
	if err := s.topics.Create(ctx, topic); err != nil {
		log.Warn("failed to save topic", zap.Error(err))
	}

	log.Info("topic added", zap.Int("cards", created), zap.Int("requested", f.WordCount))

	return done(entities.NewReply(fmt.Sprintf(msgTopicAdded, created, f.Topic)).WithButtons(
		entities.Row(entities.NewButton("📚 Start review", entities.ActionStartReview)),
	))
}

func addTopicPrompt(f *entities.AddTopicFlow) entities.Reply {
	var reply entities.Reply

	switch f.Step {
	case entities.TopicAskTopic:
		buttons := make([]entities.Button, 0, len(topicSuggestions))
		for _, t := range topicSuggestions {
			buttons = append(buttons, entities.NewButton(t, entities.ActionSetTopic, t))
		}
		reply = entities.NewReply(msgTopicAskTopic).WithButtons(chunk(buttons, 3)...)

	case entities.TopicAskSourceLanguage:
		reply = entities.NewReply(msgTopicAskSource).WithButtons(languageRows(entities.ActionSetSourceLang, "")...)

	case entities.TopicAskTargetLanguage:
		reply = entities.NewReply(msgTopicAskTarget).
			WithButtons(languageRows(entities.ActionSetTargetLang, f.SourceLanguage)...)

	case entities.TopicAskDescriptionLanguage:
		reply = entities.NewReply(msgTopicAskDesc).WithButtons(languageRows(entities.ActionSetDescLang, "")...)

	case entities.TopicAskWordLevel:
		buttons := make([]entities.Button, 0, len(entities.WordLevels))
		for _, lvl := range entities.WordLevels {
			buttons = append(buttons, entities.NewButton(lvl, entities.ActionSetWordLevel, lvl))
		}
		reply = entities.NewReply(msgTopicAskLevel).WithButtons(chunk(buttons, 3)...)

	case entities.TopicAskWordCount:
		buttons := make([]entities.Button, 0, len(wordCountChoices))
		for _, n := range wordCountChoices {
			v := strconv.Itoa(n)
			buttons = append(buttons, entities.NewButton(v, entities.ActionSetWordCount, v))
		}
		reply = entities.NewReply(msgTopicAskCount).WithButtons(buttons)

	case entities.TopicConfirm:
		text := fmt.Sprintf(msgTopicConfirm,
			f.Topic,
			entities.LanguageName(f.SourceLanguage),
			entities.LanguageName(f.TargetLanguage),
			entities.LanguageName(f.DescriptionLanguage),
			f.WordLevel,
			f.WordCount,
		)
		return entities.NewReply(text).WithButtons(
			entities.Row(
				entities.NewButton("✅ Generate", entities.ActionConfirmAddTopic),
				entities.NewButton("❌ Cancel", entities.ActionCancelAddTopic),
			),
			entities.Row(
				entities.NewButton("✏️ Topic", entities.ActionBack, string(entities.TopicAskTopic)),
				entities.NewButton("✏️ Languages", entities.ActionBack, string(entities.TopicAskSourceLanguage)),
			),
			entities.Row(
				entities.NewButton("✏️ Level", entities.ActionBack, string(entities.TopicAskWordLevel)),
				entities.NewButton("✏️ Count", entities.ActionBack, string(entities.TopicAskWordCount)),
			),
		)
	}

	nav := []entities.Button{entities.NewButton("❌ Cancel", entities.ActionCancelAddTopic)}
	if idx := f.Step.Index(); idx > 0 {
		prev := entities.AddTopicSteps[idx-1]
		nav = append([]entities.Button{entities.NewButton("⬅️ Back", entities.ActionBack, string(prev))}, nav...)
	}
	return reply.WithButtons(nav)
}

// languageRows renders the language list, leaving out skip.
func languageRows(t entities.ActionType, skip string) [][]entities.Button {
	buttons := make([]entities.Button, 0, len(entities.Languages))
	for _, l := range entities.Languages {
		if l.Code == skip {
			continue
		}
		buttons = append(buttons, entities.NewButton(l.Flag+" "+l.Name, t, l.Code))
	}
	return chunk(buttons, 3)
}
