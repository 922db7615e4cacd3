// ABOUTME: Fakes for importer tests
// ABOUTME: In-memory store, canned provider and recording logger

package importer

import (
	"context"
	"path"
	"sort"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
)

type fakeStore struct {
	docs map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string][]byte)}
}

func (f *fakeStore) Get(ctx context.Context, p string) ([]byte, error) {
	data, ok := f.docs[p]
	if !ok {
		return nil, &errors.NotFoundError{Path: p}
	}
	return data, nil
}

func (f *fakeStore) Put(ctx context.Context, p string, data []byte) error {
	f.docs[p] = data
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, p string) (bool, error) {
	_, ok := f.docs[p]
	return ok, nil
}

func (f *fakeStore) List(ctx context.Context, pattern string) ([]string, error) {
	var out []string
	for p := range f.docs {
		if ok, _ := path.Match(pattern, p); ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeProvider struct {
	name         string
	observations []domain.Observation
	err          error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, username string) ([]domain.Observation, error) {
	return f.observations, f.err
}

type mockLogger struct {
	warns []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.warns = append(m.warns, msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
