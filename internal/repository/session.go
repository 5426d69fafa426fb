package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/model"
)

var (
	ErrSessionNotFound = errors.New("reading session not found")
)

// SessionRepository is the activity ledger: sessions are appended when the
// user logs reading and are never mutated afterwards. All derived aggregates
// read from here.
type SessionRepository interface {
	Create(session *model.ReadingSession) error
	ByID(sessionID string) (*model.ReadingSession, error)
	ByBook(bookID string) ([]*model.ReadingSession, error)
	SessionsInRange(start, end time.Time) ([]*model.ReadingSession, error)
	AllSessionDates() ([]time.Time, error)
	TotalPagesRead() (int, error)
	TotalMinutesRead() (int, error)
	MaxPagesInDay() (int, error)
	MaxSessionMinutes() (int, error)
	Delete(sessionID string) error
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.ReadingSession) error {
	query := `INSERT INTO reading_sessions (id, book_id, date, pages_read, minutes_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		session.ID,
		session.BookID,
		session.Date,
		session.PagesRead,
		session.MinutesRead,
		session.CreatedAt,
	)

	return err
}

func (r *sessionRepository) ByID(sessionID string) (*model.ReadingSession, error) {
	session := &model.ReadingSession{}
	query := `SELECT * FROM reading_sessions WHERE id = $1`

	err := r.db.Get(session, query, sessionID)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}

	return session, err
}

func (r *sessionRepository) ByBook(bookID string) ([]*model.ReadingSession, error) {
	var sessions []*model.ReadingSession
	query := `SELECT * FROM reading_sessions WHERE book_id = $1 ORDER BY date DESC, created_at DESC`

	err := r.db.Select(&sessions, query, bookID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// SessionsInRange returns sessions with date in [start, end).
func (r *sessionRepository) SessionsInRange(start, end time.Time) ([]*model.ReadingSession, error) {
	var sessions []*model.ReadingSession
	query := `SELECT * FROM reading_sessions WHERE date >= $1 AND date < $2 ORDER BY date ASC, created_at ASC`

	err := r.db.Select(&sessions, query, start, end)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// AllSessionDates returns the distinct calendar days with at least one
// session, in ascending order. Streak derivation reads this.
func (r *sessionRepository) AllSessionDates() ([]time.Time, error) {
	var days []string
	query := `SELECT DISTINCT date(date) AS day FROM reading_sessions ORDER BY day ASC`

	err := r.db.Select(&days, query)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	return dates, nil
}

func (r *sessionRepository) TotalPagesRead() (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(pages_read), 0) FROM reading_sessions`
	err := r.db.QueryRow(query).Scan(&total)
	return total, err
}

func (r *sessionRepository) TotalMinutesRead() (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(minutes_read), 0) FROM reading_sessions`
	err := r.db.QueryRow(query).Scan(&total)
	return total, err
}

// MaxPagesInDay returns the largest page total logged on a single calendar day.
func (r *sessionRepository) MaxPagesInDay() (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(total), 0) FROM (
	            SELECT SUM(pages_read) AS total FROM reading_sessions GROUP BY date(date)
	          )`
	err := r.db.QueryRow(query).Scan(&max)
	return max, err
}

// MaxSessionMinutes returns the longest single session in minutes.
func (r *sessionRepository) MaxSessionMinutes() (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(minutes_read), 0) FROM reading_sessions`
	err := r.db.QueryRow(query).Scan(&max)
	return max, err
}

func (r *sessionRepository) Delete(sessionID string) error {
	result, err := r.db.Exec(`DELETE FROM reading_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}
