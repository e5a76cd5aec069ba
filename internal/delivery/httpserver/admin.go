package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/aliskhannn/leitner-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/leitner-vocab-bot/internal/service"
)

const maxRequestSize = 1 << 20

type textRequest struct {
	Text string `json:"text"`
}

// GET /admin/users
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		s.fail(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// DELETE /admin/users/{userID}
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	report, err := s.admin.DeleteUser(r.Context(), userID)
	if err != nil {
		s.fail(w, "delete user", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// POST /admin/users/{userID}/messages
func (s *Server) sendDirectMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := s.admin.SendDirectMessage(r.Context(), userID, req.Text)
	if errors.Is(err, service.ErrUserNotDelivered) && msg != nil {
		writeJSON(w, http.StatusBadGateway, msg)
		return
	}
	if err != nil {
		s.fail(w, "send direct message", err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// POST /admin/broadcast
func (s *Server) broadcast(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.admin.Broadcast(r.Context(), req.Text)
	if err != nil {
		s.fail(w, "broadcast", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /admin/assignments
func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	items, err := s.admin.ListAssignments(r.Context())
	if err != nil {
		s.fail(w, "list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /admin/assignments
func (s *Server) assignWords(w http.ResponseWriter, r *http.Request) {
	var req service.AssignWordsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := s.admin.AssignWords(r.Context(), req)
	if err != nil {
		s.fail(w, "assign words", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// GET /admin/tickets?status=open
func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	status := entities.TicketStatus(r.URL.Query().Get("status"))
	switch status {
	case "", entities.TicketOpen, entities.TicketClosed:
	default:
		writeError(w, http.StatusBadRequest, "status must be open or closed")
		return
	}

	tickets, err := s.admin.ListTickets(r.Context(), status)
	if err != nil {
		s.fail(w, "list tickets", err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// POST /admin/users/{userID}/tickets/{ticketID}/close
func (s *Server) closeTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	ticket, err := s.admin.CloseTicket(r.Context(), userID, r.PathValue("ticketID"))
	if err != nil {
		s.fail(w, "close ticket", err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// fail writes the status matching err. Only unexpected errors are logged.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op, zap.Error(err))
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
