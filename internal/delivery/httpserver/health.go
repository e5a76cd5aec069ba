package httpserver

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Storage   string    `json:"storage,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// health reports liveness and, when a pinger is configured, storage reachability.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Timestamp: time.Now().UTC()}
	if s.storage == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp.Storage = "ok"
	if err := s.storage.Ping(ctx); err != nil {
		resp.Status, resp.Storage = "down", "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
