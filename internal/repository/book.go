package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/model"
)

const (
	BookSortRecent = "recent"
	BookSortTitle  = "title"
	BookSortAuthor = "author"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

type BookRepository interface {
	Create(book *model.Book) error
	ByID(bookID string) (*model.Book, error)
	Books(status model.BookStatus, sortBy string) ([]*model.Book, error)
	Update(book *model.Book) error
	Delete(bookID string) error
	CountFinished() (int, error)
	CompletionEventsInRange(start, end time.Time) ([]*model.CompletionEvent, error)
}

type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(book *model.Book) error {
	query := `INSERT INTO books (id, title, author, page_count, status, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		book.ID,
		book.Title,
		book.Author,
		book.PageCount,
		book.Status,
		book.CompletedAt,
		book.CreatedAt,
		book.UpdatedAt,
	)

	return err
}

func (r *bookRepository) ByID(bookID string) (*model.Book, error) {
	book := &model.Book{}
	query := `SELECT * FROM books WHERE id = $1`

	err := r.db.Get(book, query, bookID)
	if err == sql.ErrNoRows {
		return nil, ErrBookNotFound
	}

	return book, err
}

func (r *bookRepository) Books(status model.BookStatus, sortBy string) ([]*model.Book, error) {
	var books []*model.Book

	var orderBy string
	switch sortBy {
	case BookSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	case BookSortAuthor:
		orderBy = "ORDER BY LOWER(author) ASC, LOWER(title) ASC"
	default: // BookSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	var err error
	if status == "" {
		err = r.db.Select(&books, `SELECT * FROM books `+orderBy)
	} else {
		err = r.db.Select(&books, `SELECT * FROM books WHERE status = $1 `+orderBy, status)
	}
	if err != nil {
		return nil, err
	}

	return books, nil
}

func (r *bookRepository) Update(book *model.Book) error {
	query := `UPDATE books
	          SET title = $1, author = $2, page_count = $3, status = $4, completed_at = $5, updated_at = $6
	          WHERE id = $7`

	result, err := r.db.Exec(query,
		book.Title,
		book.Author,
		book.PageCount,
		book.Status,
		book.CompletedAt,
		time.Now(),
		book.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) Delete(bookID string) error {
	result, err := r.db.Exec(`DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) CountFinished() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM books WHERE status = $1`
	err := r.db.QueryRow(query, model.BookStatusFinished).Scan(&count)
	return count, err
}

// CompletionEventsInRange returns finished books whose completion date falls
// within [start, end).
func (r *bookRepository) CompletionEventsInRange(start, end time.Time) ([]*model.CompletionEvent, error) {
	var events []*model.CompletionEvent
	query := `SELECT id AS book_id, completed_at FROM books
	          WHERE status = $1 AND completed_at IS NOT NULL AND completed_at >= $2 AND completed_at < $3
	          ORDER BY completed_at ASC`

	err := r.db.Select(&events, query, model.BookStatusFinished, start, end)
	if err != nil {
		return nil, err
	}

	return events, nil
}
