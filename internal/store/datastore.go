package store

// Cache is the render-cache access used by the generator. Both Store
// (direct SQLite) and BatchedStore (in-memory buffering for parallel
// generation) implement it.
type Cache interface {
	Get(fingerprint string) (Render, bool, error)
	Put(r Render) error
}

// Compile-time check: *Store satisfies Cache.
var _ Cache = (*Store)(nil)
