// ABOUTME: Filesystem content store, the production backend
// ABOUTME: Maps slash-separated document paths onto a directory tree

package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	coreerrors "natureshare-pipeline/core/errors"
)

// Store implements the ContentStore interface on a directory tree rooted
// at a single content path.
type Store struct {
	root string
}

// NewStore creates a filesystem store rooted at root, creating the root
// directory if it does not exist.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("content root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}
	return &Store{root: root}, nil
}

// Get returns the document at path.
func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.abs(path))
	if os.IsNotExist(err) {
		return nil, &coreerrors.NotFoundError{Path: path}
	}
	if err != nil {
		return nil, &coreerrors.StoreError{Op: "get", Path: path, Err: err}
	}
	return data, nil
}

// Put writes the document at path, creating parent directories as needed.
func (s *Store) Put(ctx context.Context, path string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	abs := s.abs(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return &coreerrors.StoreError{Op: "put", Path: path, Err: err}
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return &coreerrors.StoreError{Op: "put", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether a document is present at path.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	info, err := os.Stat(s.abs(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, &coreerrors.StoreError{Op: "stat", Path: path, Err: err}
	}
	return !info.IsDir(), nil
}

// List returns document paths matching a glob pattern. Patterns use "*"
// within a single path segment, the same semantics path.Match applies.
func (s *Store) List(ctx context.Context, pattern string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	matches, err := filepath.Glob(filepath.Join(s.root, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, &coreerrors.StoreError{Op: "list", Path: pattern, Err: err}
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(s.root, match)
		if err != nil {
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	return paths, nil
}

// abs resolves a document path against the store root.
func (s *Store) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
}
