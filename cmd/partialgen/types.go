package main

import "time"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLITarget is a JSON-friendly generation target.
type CLITarget struct {
	File       string   `json:"file"`
	Identifier string   `json:"identifier"`
	Kind       string   `json:"kind"`
	Line       int      `json:"line"`
	HintName   string   `json:"hint_name"`
	Attributes []string `json:"attributes,omitempty"`
}

// CLIOutput is one generated file.
type CLIOutput struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	HintName string `json:"hint_name"`
	Path     string `json:"path,omitempty"`
	Cached   bool   `json:"cached"`
	Written  bool   `json:"written"`
	Text     string `json:"text,omitempty"`
}

// CLIGenerateSummary reports a generate run.
type CLIGenerateSummary struct {
	RunID   string      `json:"run_id"`
	Files   int         `json:"files"`
	Outputs []CLIOutput `json:"outputs"`
	Written int         `json:"written"`
	Cached  int         `json:"cached"`
	Stale   []CLIStale  `json:"stale,omitempty"`
}

// CLIStale is a generated file whose content on disk is out of date.
type CLIStale struct {
	Path    string `json:"path"`
	Missing bool   `json:"missing,omitempty"`
	Patch   string `json:"patch,omitempty"`
}

// CLICacheStats reports render cache contents.
type CLICacheStats struct {
	Path    string `json:"path"`
	Renders int64  `json:"renders"`
	Hits    int64  `json:"hits"`
	Bytes   int64  `json:"bytes"`
	Removed *int64 `json:"removed,omitempty"`
}

// CLICachedRender is one cached render.
type CLICachedRender struct {
	Fingerprint string    `json:"fingerprint"`
	HintName    string    `json:"hint_name"`
	Hits        int64     `json:"hits"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsedAt  time.Time `json:"last_used_at"`
	Text        string    `json:"text"`
}
