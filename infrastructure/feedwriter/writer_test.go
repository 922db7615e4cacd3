// ABOUTME: Tests for the feed writer
// ABOUTME: Round-trips written RSS and Atom renditions through a feed parser

package feedwriter

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
	geojson "github.com/paulmach/go.geojson"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/infrastructure/store/memory"
)

func testPage() domain.Feed {
	return domain.Feed{
		Version:     domain.JSONFeedVersion,
		Title:       "Items",
		Description: "Observations by alice",
		Author:      &domain.FeedAuthor{Name: "alice", URL: "https://example.org/alice"},
		HomePageURL: "https://example.org/",
		FeedURL:     "https://files.example.org/alice/_index/items/index.json",
		NextURL:     "https://files.example.org/alice/_index/items/index_2.json",
		Items: []domain.FeedItem{
			{
				ID:            "https://files.example.org/alice/items/flickr/2021/51001.yaml",
				URL:           "https://example.org/item?i=x",
				Title:         "Vulpes vulpes",
				ContentText:   "A fox at dusk",
				Image:         "https://live.staticflickr.com/51001_m.jpg",
				DatePublished: "2021-03-03T20:00:00Z",
				DateModified:  "2021-03-05T00:00:00Z",
			},
		},
		Meta: domain.FeedPageMeta{ItemCount: 1, PageNumber: 1, PageCount: 1},
	}
}

func TestWriteFeedPageWritesAllRenditions(t *testing.T) {
	store := memory.NewStore()
	writer := NewWriter(store)
	ctx := context.Background()

	if err := writer.WriteFeedPage(ctx, "alice/_index/items", 1, testPage()); err != nil {
		t.Fatalf("WriteFeedPage returned error: %v", err)
	}

	for _, name := range []string{"index.json", "index.rss.xml", "index.atom.xml"} {
		ok, _ := store.Exists(ctx, "alice/_index/items/"+name)
		if !ok {
			t.Errorf("expected %s to be written", name)
		}
	}
}

func TestWriteFeedPageNumbering(t *testing.T) {
	store := memory.NewStore()
	writer := NewWriter(store)
	ctx := context.Background()

	page := testPage()
	page.Meta.PageNumber = 2
	if err := writer.WriteFeedPage(ctx, "alice/_index/items", 2, page); err != nil {
		t.Fatalf("WriteFeedPage returned error: %v", err)
	}

	ok, _ := store.Exists(ctx, "alice/_index/items/index_2.json")
	if !ok {
		t.Error("page 2 must be written as index_2.json")
	}
	ok, _ = store.Exists(ctx, "alice/_index/items/index_2.rss.xml")
	if !ok {
		t.Error("page 2 rss rendition must be index_2.rss.xml")
	}
}

func TestWrittenJSONRoundTrips(t *testing.T) {
	store := memory.NewStore()
	writer := NewWriter(store)
	ctx := context.Background()

	writer.WriteFeedPage(ctx, "alice/_index/items", 1, testPage())

	data, err := store.Get(ctx, "alice/_index/items/index.json")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	var got domain.Feed
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("written page must be valid JSON: %v", err)
	}
	if got.NextURL != "https://files.example.org/alice/_index/items/index_2.json" {
		t.Errorf("unexpected next_url %q", got.NextURL)
	}
	if got.Meta.ItemCount != 1 {
		t.Errorf("unexpected _meta %+v", got.Meta)
	}
}

func TestRSSRenditionParses(t *testing.T) {
	store := memory.NewStore()
	writer := NewWriter(store)
	ctx := context.Background()

	writer.WriteFeedPage(ctx, "alice/_index/items", 1, testPage())

	data, _ := store.Get(ctx, "alice/_index/items/index.rss.xml")
	parsed, err := gofeed.NewParser().ParseString(string(data))
	if err != nil {
		t.Fatalf("rss rendition must parse: %v", err)
	}

	if parsed.Title != "Items" {
		t.Errorf("unexpected rss title %q", parsed.Title)
	}
	if len(parsed.Items) != 1 {
		t.Fatalf("expected 1 rss item, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Vulpes vulpes" {
		t.Errorf("unexpected rss item title %q", parsed.Items[0].Title)
	}
	if !strings.Contains(parsed.Items[0].Description, "fox") {
		t.Errorf("unexpected rss item description %q", parsed.Items[0].Description)
	}
}

func TestAtomRenditionParses(t *testing.T) {
	store := memory.NewStore()
	writer := NewWriter(store)
	ctx := context.Background()

	writer.WriteFeedPage(ctx, "alice/_index/items", 1, testPage())

	data, _ := store.Get(ctx, "alice/_index/items/index.atom.xml")
	parsed, err := gofeed.NewParser().ParseString(string(data))
	if err != nil {
		t.Fatalf("atom rendition must parse: %v", err)
	}

	if parsed.Title != "Items" {
		t.Errorf("unexpected atom title %q", parsed.Title)
	}
	if len(parsed.Items) != 1 {
		t.Fatalf("expected 1 atom entry, got %d", len(parsed.Items))
	}
}

func TestWriteGeoJSON(t *testing.T) {
	store := memory.NewStore()
	writer := NewWriter(store)
	ctx := context.Background()

	fc := geojson.NewFeatureCollection()
	feature := geojson.NewPointFeature([]float64{153.02, -27.5})
	feature.SetProperty("id", "https://files.example.org/alice/items/flickr/2021/51001.yaml")
	fc.AddFeature(feature)

	if err := writer.WriteGeoJSON(ctx, "alice/_index/items", fc); err != nil {
		t.Fatalf("WriteGeoJSON returned error: %v", err)
	}

	data, err := store.Get(ctx, "alice/_index/items/index.geo.json")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	var got geojson.FeatureCollection
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("geo layer must be valid GeoJSON: %v", err)
	}
	if len(got.Features) != 1 || got.Features[0].Geometry.Point[0] != 153.02 {
		t.Errorf("unexpected geo layer %+v", got)
	}
}
