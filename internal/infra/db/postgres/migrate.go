package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies pending schema migrations from sourcePath against
// the database at dsn. Already being up to date is not an error.
func RunMigrations(sourcePath, dsn string) error {
	// migrate selects its driver by URL scheme; route postgres URLs
	// through the pgx driver.
	if strings.HasPrefix(dsn, "postgres://") {
		dsn = "pgx://" + strings.TrimPrefix(dsn, "postgres://")
	}
	m, err := migrate.New("file://"+sourcePath, dsn)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
