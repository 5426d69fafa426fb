package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	var status model.BookStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := model.ParseBookStatus(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}

	books, err := h.bookService.Books(status, r.URL.Query().Get("sort"))
	if err != nil {
		slog.Error("failed to list books", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load books")
		return
	}

	respondJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.ByID(r.PathValue("id"))
	if errors.Is(err, repository.ErrBookNotFound) {
		respondError(w, http.StatusNotFound, "book not found")
		return
	}
	if err != nil {
		slog.Error("failed to get book", "error", err, "book_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to load book")
		return
	}

	respondJSON(w, http.StatusOK, book)
}

type createBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	book, err := h.bookService.Create(req.Title, req.Author, req.PageCount)
	switch {
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidPageCount):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to create book", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create book")
		return
	}

	respondJSON(w, http.StatusCreated, book)
}

type updateBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
	Status    string `json:"status"`
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, err := model.ParseBookStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.bookService.Update(r.PathValue("id"), req.Title, req.Author, req.PageCount, status)
	switch {
	case errors.Is(err, repository.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "book not found")
		return
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidPageCount):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrFinishViaUpdate):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		slog.Error("failed to update book", "error", err, "book_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to update book")
		return
	}

	respondJSON(w, http.StatusOK, book)
}

// Finish marks a book as finished, which records the completion event for
// goal baselines, awards XP and re-evaluates achievements.
func (h *BookHandler) Finish(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.Finish(r.PathValue("id"))
	switch {
	case errors.Is(err, repository.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "book not found")
		return
	case errors.Is(err, service.ErrBookAlreadyFinished):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		slog.Error("failed to finish book", "error", err, "book_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to finish book")
		return
	}

	respondJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.bookService.Delete(r.PathValue("id"))
	if errors.Is(err, repository.ErrBookNotFound) {
		respondError(w, http.StatusNotFound, "book not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete book", "error", err, "book_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
