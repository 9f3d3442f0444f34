package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

const maxTermLength = 200

// RecordSearch stores a submitted search term. Blank terms are ignored.
func (s *pgStore) RecordSearch(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	if r := []rune(term); len(r) > maxTermLength {
		term = string(r[:maxTermLength])
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (term)
		VALUES ($1)
		`, term); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// RecentSearches returns the latest distinct terms, newest first.
func (s *pgStore) RecentSearches(ctx context.Context, limit int) ([]model.SearchRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []model.SearchRecord
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, term, created_at
		FROM (
			SELECT DISTINCT ON (lower(term)) id, term, created_at
			FROM searches
			ORDER BY lower(term), created_at DESC
		) latest
		ORDER BY created_at DESC
		LIMIT $1
		`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return out, nil
}
