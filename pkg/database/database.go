// Package database owns the relational connection pool shared by the
// repositories, the event bus outbox and the migrator.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/pkg/logger"
)

// Pool sizing applied to every driver.
const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Database wraps *sql.DB with transaction helpers and the name of the
// database/sql driver it was opened with.
type Database struct {
	db     *sql.DB
	driver string
	log    logger.Logger
}

// DriverName maps a STORAGE_DRIVER value to the registered database/sql driver name.
func DriverName(storageDriver string) (string, error) {
	switch storageDriver {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("database: storage driver %q is not relational", storageDriver)
	}
}

// NewPool opens a connection pool for storageDriver and verifies connectivity.
func NewPool(ctx context.Context, storageDriver, url string, log logger.Logger) (*Database, error) {
	driver, err := DriverName(storageDriver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}

	log.Info("database pool opened", "driver", driver, "max_open_conns", maxOpenConns)
	return &Database{db: db, driver: driver, log: log}, nil
}

// New wraps an already opened *sql.DB. Used by tests and tools that manage
// their own connection.
func New(db *sql.DB, driver string, log logger.Logger) *Database {
	return &Database{db: db, driver: driver, log: log}
}

// DB returns the underlying *sql.DB.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Driver returns the database/sql driver name ("pgx" or "mysql").
func (d *Database) Driver() string {
	return d.driver
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including on panic.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				d.log.ErrorContext(ctx, "database: rollback failed", "error", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("database: commit: %w", err)
	}
	return nil
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (d *Database) Close() {
	if err := d.db.Close(); err != nil {
		d.log.Error("database: close failed", "error", err)
	}
}
