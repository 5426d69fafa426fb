package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

type logSessionRequest struct {
	BookID      string     `json:"book_id"`
	Date        *time.Time `json:"date"`
	PagesRead   int        `json:"pages_read"`
	MinutesRead int        `json:"minutes_read"`
}

func (h *SessionHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req logSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.sessionService.Log(req.BookID, req.Date, req.PagesRead, req.MinutesRead)
	switch {
	case errors.Is(err, repository.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "book not found")
		return
	case errors.Is(err, service.ErrEmptySession),
		errors.Is(err, service.ErrNegativeAmounts),
		errors.Is(err, service.ErrFutureSession):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to log session", "error", err, "book_id", req.BookID)
		respondError(w, http.StatusInternalServerError, "failed to log session")
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.ByBook(r.PathValue("id"))
	if err != nil {
		slog.Error("failed to list sessions", "error", err, "book_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.sessionService.Delete(r.PathValue("id"))
	if errors.Is(err, repository.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete session", "error", err, "session_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
