package config

import "github.com/keshon/dircmp/internal/hash"

const (
	DefaultHash = "xxh3" // "xxh3" | "sha256"

	// FingerprintPrefixLen is how many fingerprint characters the text report shows.
	FingerprintPrefixLen = 8
)

// Positional argument bounds: <dir1> <dir2> [ignore_pattern].
const (
	MinArgs = 2
	MaxArgs = 3
)

// SelectedHash returns the hash algorithm for name, falling back to
// DefaultHash when name is empty.
func SelectedHash(name string) (hash.Algorithm, error) {
	if name == "" {
		name = DefaultHash
	}
	return hash.Parse(name)
}

// ValidArgCount reports whether n positional arguments form a valid invocation.
func ValidArgCount(n int) bool {
	return n >= MinArgs && n <= MaxArgs
}
