package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/model"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")
)

type QuoteRepository interface {
	Create(quote *model.Quote) error
	ByID(quoteID string) (*model.Quote, error)
	ByBook(bookID string) ([]*model.Quote, error)
	Quotes() ([]*model.Quote, error)
	Delete(quoteID string) error
}

type quoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(quote *model.Quote) error {
	query := `INSERT INTO quotes (id, book_id, text, page, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		quote.ID,
		quote.BookID,
		quote.Text,
		quote.Page,
		quote.CreatedAt,
	)

	return err
}

func (r *quoteRepository) ByID(quoteID string) (*model.Quote, error) {
	quote := &model.Quote{}
	query := `SELECT * FROM quotes WHERE id = $1`

	err := r.db.Get(quote, query, quoteID)
	if err == sql.ErrNoRows {
		return nil, ErrQuoteNotFound
	}

	return quote, err
}

func (r *quoteRepository) ByBook(bookID string) ([]*model.Quote, error) {
	var quotes []*model.Quote
	query := `SELECT * FROM quotes WHERE book_id = $1 ORDER BY page ASC, created_at ASC`

	err := r.db.Select(&quotes, query, bookID)
	if err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *quoteRepository) Quotes() ([]*model.Quote, error) {
	var quotes []*model.Quote
	query := `SELECT * FROM quotes ORDER BY created_at DESC`

	err := r.db.Select(&quotes, query)
	if err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *quoteRepository) Delete(quoteID string) error {
	result, err := r.db.Exec(`DELETE FROM quotes WHERE id = $1`, quoteID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrQuoteNotFound
	}

	return nil
}
