// ABOUTME: In-memory fakes for indexer tests
// ABOUTME: Store fake with segment-aware glob matching, recording feed writer and logger

package indexer

import (
	"context"
	"path"
	"sort"

	geojson "github.com/paulmach/go.geojson"

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

type writtenPage struct {
	dir  string
	page int
	feed domain.Feed
}

type mockFeedWriter struct {
	pages []writtenPage
	geo   map[string]*geojson.FeatureCollection
}

func newMockFeedWriter() *mockFeedWriter {
	return &mockFeedWriter{geo: make(map[string]*geojson.FeatureCollection)}
}

func (m *mockFeedWriter) WriteFeedPage(ctx context.Context, dir string, page int, feed domain.Feed) error {
	m.pages = append(m.pages, writtenPage{dir: dir, page: page, feed: feed})
	return nil
}

func (m *mockFeedWriter) WriteGeoJSON(ctx context.Context, dir string, fc *geojson.FeatureCollection) error {
	m.geo[dir] = fc
	return nil
}

// pageFor returns the first page written for dir, or nil.
func (m *mockFeedWriter) pageFor(dir string) *domain.Feed {
	for i := range m.pages {
		if m.pages[i].dir == dir && m.pages[i].page == 1 {
			return &m.pages[i].feed
		}
	}
	return nil
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type mockLogger struct {
	entries []logEntry
}

func (m *mockLogger) log(level, msg string, fields map[string]interface{}) {
	m.entries = append(m.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg, fields) }

func (m *mockLogger) hasWarn(msg string) bool {
	for _, e := range m.entries {
		if e.level == "warn" && e.msg == msg {
			return true
		}
	}
	return false
}
