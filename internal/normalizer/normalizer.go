// Package normalizer handles entry name normalization for dashify.
package normalizer

import "strings"

// Hyphenate rewrites an entry name with every underscore replaced by a
// hyphen. No other characters change, so the result always has the same
// length as the input.
//
// Parameters:
//   - name: the original entry name (file or subdirectory)
//
// Returns the normalized name. Names without underscores are returned
// unchanged, which makes the function idempotent.
func Hyphenate(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// NeedsRename reports whether an entry name contains at least one
// underscore and therefore qualifies for renaming.
func NeedsRename(name string) bool {
	return strings.Contains(name, "_")
}
