package infra

import (
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies pending goose migrations from dir against the
// configured database before the pool is opened.
func RunMigrations(databaseURL, dir string) error {
	db, err := goose.OpenDBWithDriver("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
