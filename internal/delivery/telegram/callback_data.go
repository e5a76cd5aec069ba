package telegram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
)

// maxCallbackDataLen is the Telegram limit for callback_data in bytes.
const maxCallbackDataLen = 64

var (
	errUnknownAction   = errors.New("unknown callback action")
	errMissingArgument = errors.New("callback action needs an argument")
	errCallbackTooLong = errors.New("callback data exceeds 64 bytes")
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// encodeAction renders a button action as "type" or "type:arg".
func encodeAction(a entities.Action) (string, error) {
	cd := callbackData{Action: string(a.Type)}
	if a.Arg != "" {
		cd.Params = []string{a.Arg}
	}

	data := cd.encode()
	if len(data) > maxCallbackDataLen {
		return "", fmt.Errorf("%w: %q", errCallbackTooLong, data)
	}
	return data, nil
}

// parseAction turns callback data into a typed action. Arguments may contain colons.
func parseAction(data string) (entities.Action, error) {
	cd := decodeCallback(data)

	t := entities.ActionType(cd.Action)
	if !t.Known() {
		return entities.Action{}, fmt.Errorf("%w: %q", errUnknownAction, cd.Raw)
	}
	if !t.HasArg() {
		return entities.NewAction(t), nil
	}

	arg := strings.Join(cd.Params, ":")
	if arg == "" {
		return entities.Action{}, fmt.Errorf("%w: %q", errMissingArgument, cd.Raw)
	}
	return entities.NewAction(t, arg), nil
}
