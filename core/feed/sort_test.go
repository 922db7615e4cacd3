// ABOUTME: Tests for the fixed feed sort chain
// ABOUTME: Unfeatured-first, recency-next, count tie-breaks, stable on full ties

package feed

import (
	"testing"

	"natureshare-pipeline/core/domain"
)

func meta(featured bool, counts ...int) *domain.FeedItemMeta {
	m := &domain.FeedItemMeta{Featured: featured}
	if len(counts) > 0 {
		m.ItemCount = counts[0]
	}
	if len(counts) > 1 {
		m.ImageCount = counts[1]
	}
	return m
}

func TestSortUnfeaturedBeforeFeatured(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "a", DatePublished: "2020-01-01T00:00:00Z", Meta: meta(true)},
		{ID: "b", DatePublished: "2021-01-01T00:00:00Z"},
	}

	SortFeedItems(items)

	if items[0].ID != "b" {
		t.Errorf("unfeatured item should sort before featured regardless of date, got %s first", items[0].ID)
	}
}

func TestSortByDatePublishedDescending(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "old", DatePublished: "2019-03-01T00:00:00Z"},
		{ID: "new", DatePublished: "2021-03-01T00:00:00Z"},
		{ID: "mid", DatePublished: "2020-03-01T00:00:00Z"},
	}

	SortFeedItems(items)

	if items[0].ID != "new" || items[1].ID != "mid" || items[2].ID != "old" {
		t.Errorf("expected newest first, got %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestSortDateModifiedBreaksTies(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "stale", DatePublished: "2020-01-01T00:00:00Z", DateModified: "2020-01-01T00:00:00Z"},
		{ID: "fresh", DatePublished: "2020-01-01T00:00:00Z", DateModified: "2020-06-01T00:00:00Z"},
	}

	SortFeedItems(items)

	if items[0].ID != "fresh" {
		t.Errorf("recently modified item should break the publish-date tie, got %s first", items[0].ID)
	}
}

func TestSortCountsBreakDateTies(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "small", Meta: meta(false, 3)},
		{ID: "big", Meta: meta(false, 30)},
		{ID: "richer", Meta: meta(false, 3, 9)},
	}

	SortFeedItems(items)

	if items[0].ID != "big" || items[1].ID != "richer" || items[2].ID != "small" {
		t.Errorf("expected big, richer, small; got %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestSortStableOnFullTie(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "first", DatePublished: "2020-01-01T00:00:00Z"},
		{ID: "second", DatePublished: "2020-01-01T00:00:00Z"},
		{ID: "third", DatePublished: "2020-01-01T00:00:00Z"},
	}

	SortFeedItems(items)

	if items[0].ID != "first" || items[1].ID != "second" || items[2].ID != "third" {
		t.Errorf("full ties must preserve input order, got %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}
