package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key combines the parts of a cache key into one fingerprint. Each part is
// length-prefixed so ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s\n", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
