// ABOUTME: Feed aggregation: sort, paginate and publish feed pages plus a geo layer
// ABOUTME: Pure build step, with page-1 and geo schema failures fatal at publish time

package feed

import (
	"context"
	"fmt"
	"strings"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/interfaces"
)

// DefaultPageSize is the item count per feed page.
const DefaultPageSize = 1000

// Meta describes the feed being aggregated; the per-page bookkeeping is
// derived from it during Build.
type Meta struct {
	Title       string
	Description string
	Author      *domain.FeedAuthor

	// HomePageURL is the human-facing page for this feed's scope
	HomePageURL string

	// FeedBaseURL is the public URL of the directory the pages land in,
	// with trailing slash
	FeedBaseURL string

	Display *domain.FeedDisplay
}

// Service aggregates feed items into paginated pages and a geo layer.
type Service struct {
	deps     interfaces.Dependencies
	pageSize int
}

// NewService creates a feed aggregation service. A non-positive pageSize
// falls back to DefaultPageSize.
func NewService(deps interfaces.Dependencies, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{deps: deps, pageSize: pageSize}
}

// PageFileName returns the JSON file name for a page number. Numbering
// starts at 1, which is unsuffixed.
func PageFileName(page int) string {
	if page <= 1 {
		return "index.json"
	}
	return fmt.Sprintf("index_%d.json", page)
}

// Build sorts and paginates items into feed pages. The full item set must be
// collected before calling; there is no streaming emission. next_url is set
// on every page, the last included: consumers treat a missing next page as
// end of data.
func (s *Service) Build(items []domain.FeedItem, meta Meta) []domain.Feed {
	sorted := make([]domain.FeedItem, len(items))
	copy(sorted, items)
	SortFeedItems(sorted)

	pageCount := (len(sorted) + s.pageSize - 1) / s.pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	pages := make([]domain.Feed, 0, pageCount)
	for page := 1; page <= pageCount; page++ {
		start := (page - 1) * s.pageSize
		end := start + s.pageSize
		if end > len(sorted) {
			end = len(sorted)
		}

		pages = append(pages, domain.Feed{
			Version:     domain.JSONFeedVersion,
			Title:       meta.Title,
			Description: meta.Description,
			Author:      meta.Author,
			HomePageURL: meta.HomePageURL,
			FeedURL:     pageURL(meta.FeedBaseURL, page),
			NextURL:     pageURL(meta.FeedBaseURL, page+1),
			Items:       sorted[start:end],
			Display:     meta.Display,
			Meta: domain.FeedPageMeta{
				ItemCount:  len(sorted),
				PageNumber: page,
				PageCount:  pageCount,
			},
		})
	}
	return pages
}

// Publish builds the pages and geo layer for items and writes them under
// dir. Page 1 and the geo layer are schema-validated before any write; a
// failure there is an aggregator bug and aborts this directory's build.
func (s *Service) Publish(ctx context.Context, dir string, items []domain.FeedItem, meta Meta) error {
	pages := s.Build(items, meta)
	fc := BuildGeoJSON(allItems(pages))

	if s.deps.Validator != nil {
		if err := s.deps.Validator.Validate(&pages[0], interfaces.SchemaFeed); err != nil {
			return fmt.Errorf("feed page 1 for %s: %w", dir, err)
		}
		if err := s.deps.Validator.Validate(fc, interfaces.SchemaGeo); err != nil {
			return fmt.Errorf("geo layer for %s: %w", dir, err)
		}
	}

	for i, page := range pages {
		if err := s.deps.FeedWriter.WriteFeedPage(ctx, dir, i+1, page); err != nil {
			return err
		}
	}
	if err := s.deps.FeedWriter.WriteGeoJSON(ctx, dir, fc); err != nil {
		return err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("published feed", map[string]interface{}{
			"dir":   dir,
			"items": len(items),
			"pages": len(pages),
		})
	}
	return nil
}

// AverageCoord returns the arithmetic mean of all present coordinate pairs,
// rounded to 6 decimals, or nil when no item has coordinates.
func AverageCoord(items []domain.FeedItem) []float64 {
	var lon, lat float64
	n := 0
	for i := range items {
		if c := items[i].Coordinates(); c != nil {
			lon += c[0]
			lat += c[1]
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return []float64{
		domain.RoundCoord(lon / float64(n)),
		domain.RoundCoord(lat / float64(n)),
	}
}

// RollupItem builds the synthetic feed entry summarizing a named group of
// items for an index-of-indexes feed. Items are expected in feed order; the
// image and dates come from the first item carrying them.
func RollupItem(id, url, name string, items []domain.FeedItem) domain.FeedItem {
	entry := domain.FeedItem{
		ID:          id,
		URL:         url,
		Title:       strings.ReplaceAll(name, "_", " "),
		ContentText: fmt.Sprintf("%d items", len(items)),
		Meta: &domain.FeedItemMeta{
			Name:      name,
			ItemCount: len(items),
		},
	}

	for i := range items {
		if items[i].Image != "" {
			entry.Image = items[i].Image
			break
		}
	}
	for i := range items {
		if items[i].DatePublished != "" {
			entry.DatePublished = items[i].DatePublished
			entry.Meta.Date = items[i].DatePublished
			break
		}
	}
	for i := range items {
		if items[i].DateModified != "" {
			entry.DateModified = items[i].DateModified
			break
		}
	}

	if coord := AverageCoord(items); coord != nil {
		entry.Geo = &domain.FeedGeo{Coordinates: coord}
	}
	return entry
}

func pageURL(base string, page int) string {
	if base == "" {
		return ""
	}
	return base + PageFileName(page)
}

func allItems(pages []domain.Feed) []domain.FeedItem {
	if len(pages) == 1 {
		return pages[0].Items
	}
	var out []domain.FeedItem
	for _, p := range pages {
		out = append(out, p.Items...)
	}
	return out
}
