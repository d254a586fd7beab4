// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/foremenchoice/chitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	// cascade controls the delete policy for groups and subscribers: when
	// true, owned/dependent rows are removed in the same transaction;
	// when false, deletes fail with storage.ErrReferential while dependents
	// exist.
	cascade bool
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithCascadeDelete enables cascade deletion of dependent rows.
func WithCascadeDelete() Option {
	return func(s *SQLiteStore) { s.cascade = true }
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// mapUnique translates the driver's UNIQUE-violation errors into the
// storage error kinds. Natural-key columns (name, phone, email) map to
// ErrDuplicate; relationship constraints map to ErrConflict. The driver
// exposes no typed constraint error, so this matches on the standard
// "UNIQUE constraint failed: Table.column" message.
func mapUnique(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	switch {
	case strings.Contains(msg, "Groups.name"),
		strings.Contains(msg, "Subscribers.phoneNumber"),
		strings.Contains(msg, "Users.email"):
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	default:
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	}
}

// date round-trips for calendar-date TEXT columns.

func dateToText(t time.Time) string {
	return t.Format(time.DateOnly)
}

func textToDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
