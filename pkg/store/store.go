// Package store persists the harness's own configuration — the
// controller address and DUT identity — across runs, using one
// concrete, durable choice: SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Config is the harness's persisted identity: how to reach the
// coordinator, and which node under test to address.
type Config struct {
	ControllerAddr string
	DUTNodeID      uint16
	DUTIEEEAddress string
}

// Store wraps a SQLite database holding a single Config row.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the SQLite database at path, applying pragmas
// for durability and running migrations. If path is empty, the default
// config-directory location is used.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = defaultStorePath()
		if err != nil {
			return nil, fmt.Errorf("determine default store path: %w", err)
		}
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect to store database: %w", err)
	}

	s := &Store{db: sqlDB, path: path}
	if err := s.migrate(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate store database: %w", err)
	}

	return s, nil
}

// Path returns the store's backing file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Tx runs fn within a transaction, rolling back on error.
func (s *Store) Tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

func defaultStorePath() (string, error) {
	var baseDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		baseDir = xdg
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, ".config")
	}
	return filepath.Join(baseDir, "zcl-harness", "harness.db"), nil
}
