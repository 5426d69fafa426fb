package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

var (
	ErrQuoteTextRequired = errors.New("quote text is required")
)

type QuoteService struct {
	repo  repository.QuoteRepository
	books repository.BookRepository
	clock Clock
}

func NewQuoteService(repo repository.QuoteRepository, books repository.BookRepository, clock Clock) *QuoteService {
	return &QuoteService{
		repo:  repo,
		books: books,
		clock: clock,
	}
}

func (s *QuoteService) Create(bookID, text string, page int) (*model.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrQuoteTextRequired
	}

	// Verify the book exists
	book, err := s.books.ByID(bookID)
	if err != nil {
		return nil, err
	}

	quote := &model.Quote{
		ID:        uuid.New().String(),
		BookID:    book.ID,
		Text:      text,
		Page:      page,
		CreatedAt: s.clock.Now(),
	}

	err = s.repo.Create(quote)
	if err != nil {
		return nil, err
	}

	return quote, nil
}

func (s *QuoteService) ByBook(bookID string) ([]*model.Quote, error) {
	return s.repo.ByBook(bookID)
}

func (s *QuoteService) Quotes() ([]*model.Quote, error) {
	return s.repo.Quotes()
}

func (s *QuoteService) Delete(quoteID string) error {
	_, err := s.repo.ByID(quoteID)
	if err != nil {
		return err
	}

	return s.repo.Delete(quoteID)
}
