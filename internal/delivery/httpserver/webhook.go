package httpserver

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
	maxUpdateSize     = 1 << 20
)

// webhook handles one Telegram update. Telegram retries every non-2xx answer, so
// malformed bodies and handling failures are logged and still acknowledged with 200.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.WebhookSecret != "" {
		got := r.Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.WebhookSecret)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateSize))
	if err != nil {
		s.logger.Error("failed to read webhook body", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		s.logger.Error("failed to decode webhook update",
			zap.ByteString("body", body),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusOK)
		return
	}

	// The update is handled to the end even if Telegram drops the connection.
	s.updates.HandleUpdate(context.WithoutCancel(r.Context()), update)
	w.WriteHeader(http.StatusOK)
}
