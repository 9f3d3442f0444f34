// exposes a Store interface that is passed to handlers that need search history
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

type Store interface {
	// search history
	RecordSearch(ctx context.Context, term string) error
	RecentSearches(ctx context.Context, limit int) ([]model.SearchRecord, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
