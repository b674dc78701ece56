package partialgen

// Version is folded into every cache key, so a new release never serves
// renders produced by an older one.
const Version = "0.1.0"

// Target is a declaration that output can be generated for.
type Target struct {
	File       string
	Identifier string
	Kind       string
	Line       int
	HintName   string
	Attributes []string
}

// Output is the generated source for one target.
type Output struct {
	// Source is the file the target was declared in.
	Source string
	// Target is the target's identifier.
	Target string
	// HintName is the generated file's name.
	HintName string
	Text     string
	// Fingerprint keys the render cache.
	Fingerprint string
	// Cached reports whether Text came from the render cache.
	Cached bool
}
