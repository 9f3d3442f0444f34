package db

import (
	"errors"
	"fmt"
	"os"
)

// TestStore is the search-history store used by the integration test.
var TestStore Store

// InitTestDB connects to TEST_DATABASE_URL, applies the migrations under
// migrationsPath and empties the searches table so the search-history
// integration test starts from a known state.
func InitTestDB(migrationsPath string) error {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		return errors.New("TEST_DATABASE_URL environment variable is not set")
	}

	if err := Init(dbURL); err != nil {
		return err
	}
	if err := RunMigrations(migrationsPath); err != nil {
		return err
	}
	if _, err := DB.Exec(`TRUNCATE searches`); err != nil {
		return fmt.Errorf("reset searches: %w", err)
	}

	TestStore = NewStore(DB)
	return nil
}
