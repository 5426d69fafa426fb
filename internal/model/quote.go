package model

import "time"

type Quote struct {
	ID        string    `json:"id" db:"id"`
	BookID    string    `json:"book_id" db:"book_id"`
	Text      string    `json:"text" db:"text"`
	Page      int       `json:"page" db:"page"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
