package model

import "time"

// SearchRecord is a submitted search term kept for the "recent searches" list.
type SearchRecord struct {
	ID        int       `db:"id"          json:"id"`
	Term      string    `db:"term"        json:"term"`
	CreatedAt time.Time `db:"created_at"  json:"created_at"`
}
