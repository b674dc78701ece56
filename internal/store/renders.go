package store

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
)

// Get returns the render stored under fingerprint and records the hit.
// The bool is false when nothing is cached.
func (s *Store) Get(fingerprint string) (Render, bool, error) {
	res, err := s.db.Exec(
		"UPDATE renders SET hits = hits + 1, last_used_at = ? WHERE fingerprint = ?",
		s.timestamp(), fingerprint,
	)
	if err != nil {
		return Render{}, false, errors.Wrap(err, "touch render")
	}
	if n, err := res.RowsAffected(); err != nil {
		return Render{}, false, errors.Wrap(err, "rows affected")
	} else if n == 0 {
		return Render{}, false, nil
	}
	r, err := s.lookup(fingerprint)
	if err != nil {
		return Render{}, false, err
	}
	return r, true, nil
}

// Peek returns the render stored under fingerprint without recording a hit.
func (s *Store) Peek(fingerprint string) (Render, bool, error) {
	r, err := s.lookup(fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return Render{}, false, nil
	}
	if err != nil {
		return Render{}, false, err
	}
	return r, true, nil
}

func (s *Store) lookup(fingerprint string) (Render, error) {
	var r Render
	err := s.db.QueryRow(
		`SELECT fingerprint, hint_name, output, hits, created_at, last_used_at
		 FROM renders WHERE fingerprint = ?`, fingerprint,
	).Scan(&r.Fingerprint, &r.HintName, &r.Output, &r.Hits, &r.CreatedAt, &r.LastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Render{}, err
	}
	if err != nil {
		return Render{}, errors.Wrapf(err, "render %s", fingerprint)
	}
	return r, nil
}

// Put stores r, replacing any render with the same fingerprint. Hits and
// the creation time of an existing row are kept.
func (s *Store) Put(r Render) error {
	return putRender(s.db, r, s.timestamp())
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func putRender(db execer, r Render, now time.Time) error {
	if r.Fingerprint == "" {
		return errors.New("put render: empty fingerprint")
	}
	_, err := db.Exec(
		`INSERT INTO renders (fingerprint, hint_name, output, hits, created_at, last_used_at)
		 VALUES (?, ?, ?, 0, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
		   hint_name = excluded.hint_name,
		   output = excluded.output,
		   last_used_at = excluded.last_used_at`,
		r.Fingerprint, r.HintName, r.Output, now, now,
	)
	if err != nil {
		return errors.Wrapf(err, "put render %s", r.HintName)
	}
	return nil
}

// Delete removes the renders with the given fingerprints.
func (s *Store) Delete(fingerprints ...string) (int64, error) {
	if len(fingerprints) == 0 {
		return 0, nil
	}
	res, err := s.db.Exec(
		"DELETE FROM renders WHERE fingerprint IN ("+placeholderList(len(fingerprints))+")",
		stringsToArgs(fingerprints)...,
	)
	if err != nil {
		return 0, errors.Wrap(err, "delete renders")
	}
	return res.RowsAffected()
}

// Prune removes renders not used since before and returns how many went.
func (s *Store) Prune(before time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM renders WHERE last_used_at < ?", before.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "prune renders")
	}
	return res.RowsAffected()
}

// RendersByHintName returns every cached render for a hint name, most
// recently used first.
func (s *Store) RendersByHintName(hintName string) ([]*Render, error) {
	rows, err := s.db.Query(
		`SELECT fingerprint, hint_name, output, hits, created_at, last_used_at
		 FROM renders WHERE hint_name = ? ORDER BY last_used_at DESC`, hintName,
	)
	if err != nil {
		return nil, errors.Wrap(err, "renders by hint name")
	}
	defer rows.Close()
	var out []*Render
	for rows.Next() {
		r := &Render{}
		if err := rows.Scan(&r.Fingerprint, &r.HintName, &r.Output, &r.Hits, &r.CreatedAt, &r.LastUsedAt); err != nil {
			return nil, errors.Wrap(err, "scan render")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns totals over the whole cache.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(hits), 0), COALESCE(SUM(LENGTH(output)), 0) FROM renders",
	).Scan(&st.Renders, &st.Hits, &st.Bytes)
	if err != nil {
		return Stats{}, errors.Wrap(err, "stats")
	}
	return st, nil
}

// --- Metadata ---

// GetMetadata returns the value stored under key, or "" when unset.
func (s *Store) GetMetadata(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "get metadata %s", key)
	}
	return v, nil
}

// SetMetadata stores value under key.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return errors.Wrapf(err, "set metadata %s", key)
	}
	return nil
}

// EnsureMetadata compares the value under key with want. When they differ
// the cached renders are dropped and want is stored. It reports whether the
// cache was reset.
func (s *Store) EnsureMetadata(key, want string) (bool, error) {
	got, err := s.GetMetadata(key)
	if err != nil {
		return false, err
	}
	if got == want {
		return false, nil
	}
	if err := s.Reset(); err != nil {
		return false, err
	}
	return true, s.SetMetadata(key, want)
}
