// ABOUTME: In-memory content store for tests and dry runs
// ABOUTME: Mirrors the filesystem store semantics including glob listing

package memory

import (
	"context"
	"path"
	"sort"
	"sync"

	coreerrors "natureshare-pipeline/core/errors"
)

// Store implements the ContentStore interface in memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// Get returns the document at path.
func (s *Store) Get(ctx context.Context, p string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[p]
	if !ok {
		return nil, &coreerrors.NotFoundError{Path: p}
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Put writes the document at path.
func (s *Store) Put(ctx context.Context, p string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.docs[p] = stored
	return nil
}

// Exists reports whether a document is present at path.
func (s *Store) Exists(ctx context.Context, p string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[p]
	return ok, nil
}

// List returns sorted document paths matching a glob pattern.
func (s *Store) List(ctx context.Context, pattern string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	for p := range s.docs {
		if ok, err := path.Match(pattern, p); err == nil && ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
