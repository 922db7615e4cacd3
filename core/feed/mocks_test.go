// ABOUTME: Mock implementations for feed aggregation tests
// ABOUTME: Recording feed writer and failing validator

package feed

import (
	"context"

	geojson "github.com/paulmach/go.geojson"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
)

type mockValidator struct {
	calls      []string
	failSchema string
}

func (m *mockValidator) Validate(value interface{}, schema string) error {
	m.calls = append(m.calls, schema)
	if schema == m.failSchema {
		return &errors.ValidationError{Schema: schema, Message: "forced failure"}
	}
	return nil
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
