package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrBookAlreadyFinished = errors.New("book already finished")
	ErrInvalidPageCount    = errors.New("page count must not be negative")
	ErrFinishViaUpdate     = errors.New("books are finished via the finish action")
)

// BookService manages the catalog and the book-completion event that feeds
// yearly and monthly goal baselines.
type BookService struct {
	repo         repository.BookRepository
	profiles     *ProfileService
	goals        *GoalService
	achievements *AchievementService
	clock        Clock
}

func NewBookService(
	repo repository.BookRepository,
	profiles *ProfileService,
	goals *GoalService,
	achievements *AchievementService,
	clock Clock,
) *BookService {
	return &BookService{
		repo:         repo,
		profiles:     profiles,
		goals:        goals,
		achievements: achievements,
		clock:        clock,
	}
}

func (s *BookService) Create(title, author string, pageCount int) (*model.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if pageCount < 0 {
		return nil, ErrInvalidPageCount
	}

	now := s.clock.Now()
	book := &model.Book{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    strings.TrimSpace(author),
		PageCount: pageCount,
		Status:    model.BookStatusWantToRead,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(book)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

func (s *BookService) ByID(bookID string) (*model.Book, error) {
	return s.repo.ByID(bookID)
}

func (s *BookService) Books(status model.BookStatus, sortBy string) ([]*model.Book, error) {
	return s.repo.Books(status, sortBy)
}

func (s *BookService) Update(bookID, title, author string, pageCount int, status model.BookStatus) (*model.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if pageCount < 0 {
		return nil, ErrInvalidPageCount
	}

	book, err := s.repo.ByID(bookID)
	if err != nil {
		return nil, err
	}

	// Finishing must go through Finish so the completion event is stamped
	// and XP, goals and achievements are applied. The generic update only
	// keeps an already-finished status.
	if status == model.BookStatusFinished && book.Status != model.BookStatusFinished {
		return nil, ErrFinishViaUpdate
	}
	unfinished := status != model.BookStatusFinished && book.Status == model.BookStatusFinished
	if unfinished {
		book.CompletedAt = nil
	}

	book.Title = title
	book.Author = strings.TrimSpace(author)
	book.PageCount = pageCount
	book.Status = status

	err = s.repo.Update(book)
	if err != nil {
		return nil, err
	}

	// Un-finishing removes a completion event, so book-goal baselines shrink.
	if unfinished {
		err = s.goals.Refresh()
		if err != nil {
			return nil, err
		}
	}

	return book, nil
}

// Finish records a completion event: the book becomes finished with an
// immutable completion date, the completion XP bonus is awarded, and goals
// and achievements are re-evaluated against the grown ledger.
func (s *BookService) Finish(bookID string) (*model.Book, error) {
	book, err := s.repo.ByID(bookID)
	if err != nil {
		return nil, err
	}

	if book.Status == model.BookStatusFinished {
		return nil, ErrBookAlreadyFinished
	}

	now := s.clock.Now()
	book.Status = model.BookStatusFinished
	book.CompletedAt = &now

	err = s.repo.Update(book)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}

	profile.TotalXP += XPBookCompleted
	err = s.profiles.Update(profile)
	if err != nil {
		return nil, err
	}

	err = s.goals.Refresh()
	if err != nil {
		return nil, err
	}

	_, err = s.achievements.Evaluate(profile)
	if err != nil {
		return nil, err
	}

	return book, nil
}

func (s *BookService) Delete(bookID string) error {
	_, err := s.repo.ByID(bookID)
	if err != nil {
		return err
	}

	return s.repo.Delete(bookID)
}
