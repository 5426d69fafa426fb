package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// BookStatus is the persisted reading status of a book.
type BookStatus string

const (
	BookStatusWantToRead BookStatus = "want_to_read"
	BookStatusReading    BookStatus = "reading"
	BookStatusFinished   BookStatus = "finished"
	BookStatusAbandoned  BookStatus = "abandoned"
)

func ParseBookStatus(s string) (BookStatus, error) {
	st := BookStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown book status: %q", s)
	}
	return st, nil
}

func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusWantToRead, BookStatusReading, BookStatusFinished, BookStatusAbandoned:
		return true
	}
	return false
}

func (s *BookStatus) Scan(src any) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into BookStatus", src)
	}

	parsed, err := ParseBookStatus(str)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

func (s BookStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown book status: %q", string(s))
	}
	return string(s), nil
}

type Book struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Author    string     `json:"author" db:"author"`
	PageCount int        `json:"page_count" db:"page_count"`
	Status    BookStatus `json:"status" db:"status"`
	// CompletedAt is set once when the book transitions to finished. It is
	// the completion event consumed by yearly and monthly goal baselines.
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CompletionEvent is the ledger view of a finished book.
type CompletionEvent struct {
	BookID      string    `json:"book_id" db:"book_id"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}
