package store

import "time"

// Render is one cached rendering.
type Render struct {
	Fingerprint string
	HintName    string
	Output      string
	Hits        int64
	CreatedAt   time.Time
	LastUsedAt  time.Time
}

// Stats summarizes the cache contents.
type Stats struct {
	Renders int64
	Hits    int64
	Bytes   int64
}

// Metadata keys written by the generator.
const (
	MetaOptions = "options_fingerprint"
	MetaVersion = "tool_version"
)
