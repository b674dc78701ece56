package store

import "sync"

// BatchedStore buffers cache writes and hits in memory so generator
// workers never contend on SQLite writes. Reads check the buffer first and
// then fall through to the underlying Store without recording a hit there;
// hits are counted in the buffer and applied by CommitBatch.
//
// Thread safety: the mutex protects the buffers. The underlying Store is
// safe for concurrent reads.
type BatchedStore struct {
	store *Store
	mu    sync.Mutex

	puts  map[string]Render
	order []string
	hits  map[string]int64
}

// Compile-time check: *BatchedStore satisfies Cache.
var _ Cache = (*BatchedStore)(nil)

// NewBatchedStore creates a BatchedStore backed by the given Store for reads.
func NewBatchedStore(s *Store) *BatchedStore {
	return &BatchedStore{
		store: s,
		puts:  make(map[string]Render),
		hits:  make(map[string]int64),
	}
}

// Get returns a buffered render, or one from the underlying Store.
func (b *BatchedStore) Get(fingerprint string) (Render, bool, error) {
	b.mu.Lock()
	if r, ok := b.puts[fingerprint]; ok {
		b.hits[fingerprint]++
		b.mu.Unlock()
		return r, true, nil
	}
	b.mu.Unlock()

	r, ok, err := b.store.Peek(fingerprint)
	if err != nil || !ok {
		return r, ok, err
	}
	b.mu.Lock()
	b.hits[fingerprint]++
	b.mu.Unlock()
	return r, true, nil
}

// Put buffers r. A later Put with the same fingerprint replaces it.
func (b *BatchedStore) Put(r Render) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.puts[r.Fingerprint]; !ok {
		b.order = append(b.order, r.Fingerprint)
	}
	b.puts[r.Fingerprint] = r
	return nil
}

// Pending returns the number of buffered puts.
func (b *BatchedStore) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// drain hands the buffered puts (in first-put order) and hits to the
// caller and empties the buffers.
func (b *BatchedStore) drain() ([]Render, map[string]int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	puts := make([]Render, 0, len(b.order))
	for _, fp := range b.order {
		puts = append(puts, b.puts[fp])
	}
	hits := b.hits
	b.puts = make(map[string]Render)
	b.order = nil
	b.hits = make(map[string]int64)
	return puts, hits
}
