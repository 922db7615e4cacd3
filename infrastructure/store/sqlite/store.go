// ABOUTME: SQLite content store backend
// ABOUTME: One documents table keyed by path, glob filtering done in Go

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"time"

	_ "github.com/mattn/go-sqlite3"

	coreerrors "natureshare-pipeline/core/errors"
)

// Store implements the ContentStore interface using SQLite. It keeps the
// whole content tree in a single documents table, which makes snapshot
// copies and test fixtures a single file.
type Store struct {
	db *sql.DB
}

// NewStore creates a SQLite-backed store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates the documents table if it doesn't exist.
func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		path TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	_, err := s.db.Exec(query)
	return err
}

// Get returns the document at path.
func (s *Store) Get(ctx context.Context, p string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE path = ?", p).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Path: p}
	}
	if err != nil {
		return nil, &coreerrors.StoreError{Op: "get", Path: p, Err: err}
	}
	return data, nil
}

// Put writes the document at path, replacing any previous version.
func (s *Store) Put(ctx context.Context, p string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO documents (path, data, updated_at) VALUES (?, ?, ?)",
		p, data, time.Now().UTC())
	if err != nil {
		return &coreerrors.StoreError{Op: "put", Path: p, Err: err}
	}
	return nil
}

// Exists reports whether a document is present at path.
func (s *Store) Exists(ctx context.Context, p string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE path = ?", p).Scan(&count)
	if err != nil {
		return false, &coreerrors.StoreError{Op: "stat", Path: p, Err: err}
	}
	return count > 0, nil
}

// List returns sorted document paths matching a glob pattern. SQLite has no
// segment-aware glob, so paths come back ordered and the pattern is applied
// in Go with path.Match semantics.
func (s *Store) List(ctx context.Context, pattern string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path FROM documents ORDER BY path")
	if err != nil {
		return nil, &coreerrors.StoreError{Op: "list", Path: pattern, Err: err}
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, &coreerrors.StoreError{Op: "list", Path: pattern, Err: err}
		}
		if ok, err := path.Match(pattern, p); err == nil && ok {
			paths = append(paths, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &coreerrors.StoreError{Op: "list", Path: pattern, Err: err}
	}
	return paths, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
