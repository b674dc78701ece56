// Package store persists rendered output in SQLite, keyed by the
// fingerprint of the description tree and the render options that produced
// it.
package store

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite render cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return &Store{db: db, now: time.Now}, nil
}

// Open opens the database at dbPath and migrates it.
func Open(dbPath string) (*Store, error) {
	s, err := NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the cache tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

// Reset removes every cached render. Metadata is kept.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM renders"); err != nil {
		return errors.Wrap(err, "reset renders")
	}
	return nil
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS renders (
  fingerprint     TEXT PRIMARY KEY,
  hint_name       TEXT NOT NULL,
  output          TEXT NOT NULL,
  hits            INTEGER NOT NULL DEFAULT 0,
  created_at      TIMESTAMP NOT NULL,
  last_used_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_renders_hint_name ON renders(hint_name);
CREATE INDEX IF NOT EXISTS idx_renders_last_used ON renders(last_used_at);
`
