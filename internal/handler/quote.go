package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
}

func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteService.Quotes()
	if err != nil {
		slog.Error("failed to list quotes", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}

func (h *QuoteHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteService.ByBook(r.PathValue("id"))
	if err != nil {
		slog.Error("failed to list quotes", "error", err, "book_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}

type createQuoteRequest struct {
	BookID string `json:"book_id"`
	Text   string `json:"text"`
	Page   int    `json:"page"`
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.quoteService.Create(req.BookID, req.Text, req.Page)
	switch {
	case errors.Is(err, repository.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "book not found")
		return
	case errors.Is(err, service.ErrQuoteTextRequired):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to create quote", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create quote")
		return
	}

	respondJSON(w, http.StatusCreated, quote)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.quoteService.Delete(r.PathValue("id"))
	if errors.Is(err, repository.ErrQuoteNotFound) {
		respondError(w, http.StatusNotFound, "quote not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete quote", "error", err, "quote_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to delete quote")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
