package store

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// CommitBatch writes everything buffered in batch within a single
// transaction: puts first, then hit counts. The batch is empty afterwards
// even when the commit fails.
func (s *Store) CommitBatch(batch *BatchedStore) error {
	puts, hits := batch.drain()
	if len(puts) == 0 && len(hits) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "commit batch: begin")
	}
	defer tx.Rollback()

	now := s.timestamp()
	for _, r := range puts {
		if err := putRender(tx, r, now); err != nil {
			return errors.Wrap(err, "commit batch")
		}
	}

	// Sorted so the statement order is stable across runs.
	fps := make([]string, 0, len(hits))
	for fp := range hits {
		fps = append(fps, fp)
	}
	sort.Strings(fps)
	for _, fp := range fps {
		if _, err := tx.Exec(
			"UPDATE renders SET hits = hits + ?, last_used_at = ? WHERE fingerprint = ?",
			hits[fp], now, fp,
		); err != nil {
			return errors.Wrapf(err, "commit batch: hits for %s", fp)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit batch: commit")
	}
	return nil
}
