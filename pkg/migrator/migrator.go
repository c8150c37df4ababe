package migrator

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/ghuser/barstock/pkg/database"
)

// RunMigrations runs all pending goose migrations from files against the
// database identified by storageDriver and url.
func RunMigrations(storageDriver, url string, files fs.FS) error {
	driver, err := database.DriverName(storageDriver)
	if err != nil {
		return err
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Up(db, storageDriver, files)
}

// Up applies pending migrations on an open connection.
func Up(db *sql.DB, storageDriver string, files fs.FS) error {
	goose.SetBaseFS(files)

	if err := goose.SetDialect(storageDriver); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	return nil
}
