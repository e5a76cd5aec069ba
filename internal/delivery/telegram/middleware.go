package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one update addressed to chatID.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed update with its kind and sender and sends the
// generic error message instead of a reply.
func (h *Handler) withErrorHandling(kind string, userID int64, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		h.logger.Error("handle error",
			zap.String("update", kind),
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
