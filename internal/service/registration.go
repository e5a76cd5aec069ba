package service

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@.]+$`)

const minNameLength = 2

func (s *ConversationService) stepRegistration(
	ctx context.Context,
	user *entities.User,
	f *entities.RegistrationFlow,
	ev Event,
) (stepResult, error) {
	if ev.IsCancel() {
		// The next message starts registration over.
		return done(entities.NewReply(msgRegRequired)), nil
	}
	if ev.IsCommand() {
		return stay(f, entities.NewReply(msgRegFinishFirst), registrationPrompt(f)), nil
	}

	switch f.Step {
	case entities.RegAskLanguage:
		v, ok := ev.input(entities.ActionSelectLanguage)
		if !ok {
			return stay(f, registrationPrompt(f)), nil
		}
		lang, ok := interfaceLanguage(v)
		if !ok {
			return stay(f, entities.NewReply(msgRegUnknownLanguage), registrationPrompt(f)), nil
		}
		f.Language = lang.Code
		f.Step = entities.RegAskName

	case entities.RegAskName:
		v, ok := ev.input("")
		if !ok {
			return stay(f, registrationPrompt(f)), nil
		}
		if utf8.RuneCountInString(v) < minNameLength {
			return stay(f, entities.NewReply(msgRegNameTooShort)), nil
		}
		f.FullName = v
		f.Step = entities.RegAskEmail

	case entities.RegAskEmail:
		v, ok := ev.input("")
		if !ok {
			return stay(f, registrationPrompt(f)), nil
		}
		if !emailPattern.MatchString(v) {
			return stay(f, entities.NewReply(msgRegInvalidEmail)), nil
		}
		f.Email = v
		f.Step = entities.RegConfirm

	case entities.RegConfirm:
		switch ev.confirm(entities.ActionConfirmRegistration, entities.ActionEditRegistration) {
		case confirmYes:
			user.CompleteRegistration(f.FullName, f.Email, f.Language)
			if err := s.users.Save(ctx, user); err != nil {
				return stepResult{}, fmt.Errorf("complete registration: %w", err)
			}
			return done(entities.NewReply(fmt.Sprintf(msgRegComplete, user.DisplayName())).WithMainMenu()), nil
		case confirmNo:
			fresh := entities.NewRegistrationFlow()
			return stay(fresh, registrationPrompt(fresh)), nil
		default:
			return stay(f, registrationPrompt(f)), nil
		}

	default:
		fresh := entities.NewRegistrationFlow()
		return stay(fresh, registrationPrompt(fresh)), nil
	}

	return stay(f, registrationPrompt(f)), nil
}

func interfaceLanguage(v string) (entities.Language, bool) {
	lang, ok := entities.LookupLanguage(v)
	if !ok || !slices.Contains(entities.InterfaceLanguages, lang.Code) {
		return entities.Language{}, false
	}
	return lang, true
}

func registrationPrompt(f *entities.RegistrationFlow) entities.Reply {
	switch f.Step {
	case entities.RegAskName:
		return entities.NewReply(msgRegAskName)
	case entities.RegAskEmail:
		return entities.NewReply(msgRegAskEmail)
	case entities.RegConfirm:
		lang, _ := entities.LookupLanguage(f.Language)
		text := fmt.Sprintf(msgRegConfirm, strings.TrimSpace(lang.Flag+" "+lang.Name), f.FullName, f.Email)
		return entities.NewReply(text).WithButtons(entities.Row(
			entities.NewButton("✅ Confirm", entities.ActionConfirmRegistration),
			entities.NewButton("✏️ Edit", entities.ActionEditRegistration),
		))
	}

	buttons := make([]entities.Button, 0, len(entities.InterfaceLanguages))
	for _, code := range entities.InterfaceLanguages {
		lang, _ := entities.LookupLanguage(code)
		buttons = append(buttons, entities.NewButton(lang.Flag+" "+lang.Name, entities.ActionSelectLanguage, lang.Code))
	}
	return entities.NewReply(msgRegAskLanguage).WithButtons(chunk(buttons, 2)...)
}

// chunk splits buttons into keyboard rows of size n.
func chunk(buttons []entities.Button, n int) [][]entities.Button {
	rows := make([][]entities.Button, 0, (len(buttons)+n-1)/n)
	for b := range slices.Chunk(buttons, n) {
		rows = append(rows, b)
	}
	return rows
}
