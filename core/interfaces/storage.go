// ABOUTME: ContentStore abstracts the content tree as a key-value store
// ABOUTME: Core algorithms stay testable against an in-memory fake

package interfaces

import "context"

// ContentStore models the content directory tree as a key-value store keyed
// by slash-separated relative paths. There are no transactions; idempotent
// re-runs are the substitute for transactional consistency.
type ContentStore interface {
	// Get returns the document at path. A missing document returns an
	// error satisfying errors.IsNotFound.
	Get(ctx context.Context, path string) ([]byte, error)

	// Put writes the document at path, creating parents as needed.
	Put(ctx context.Context, path string, data []byte) error

	// Exists reports whether a document is present at path.
	Exists(ctx context.Context, path string) (bool, error)

	// List returns paths matching a glob pattern where "*" matches within
	// a single path segment (e.g. "*/items/*/*/*.yaml"). Results are
	// sorted lexicographically.
	List(ctx context.Context, pattern string) ([]string, error)
}
