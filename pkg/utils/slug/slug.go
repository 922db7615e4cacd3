// ABOUTME: Slug derivation for item file names
// ABOUTME: Matches the historical content-tree naming so re-imports hit the same paths

package slug

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	disallowed  = regexp.MustCompile(`[^a-zA-Z0-9-_.~]+`)
	underscores = regexp.MustCompile(`_+`)
)

// Slugify converts a provider title or file name into an item slug.
// The exact character set matters: existing trees were written with these
// rules, and a changed slug would orphan the old file instead of updating it.
func Slugify(s string) string {
	s = whitespace.ReplaceAllString(s, "_")
	s = disallowed.ReplaceAllString(s, "")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.TrimPrefix(s, "_")
	s = strings.TrimSuffix(s, "_")
	return s
}

// DirName converts a collection name into its directory form.
func DirName(s string) string {
	return strings.ToLower(whitespace.ReplaceAllString(s, "_"))
}
