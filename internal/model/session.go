package model

import "time"

// ReadingSession is one ledger entry: pages and minutes read against a book
// on a calendar day. Sessions are append-only; derived aggregates (streaks,
// daily goal baselines) are recomputed from them rather than edited in place.
type ReadingSession struct {
	ID          string    `json:"id" db:"id"`
	BookID      string    `json:"book_id" db:"book_id"`
	Date        time.Time `json:"date" db:"date"`
	PagesRead   int       `json:"pages_read" db:"pages_read"`
	MinutesRead int       `json:"minutes_read" db:"minutes_read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
