// ABOUTME: FeedWriter implementation persisting feed pages through the content store
// ABOUTME: Each JSON page fans out to RSS and Atom renditions plus one geo layer per feed

package feedwriter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	geojson "github.com/paulmach/go.geojson"

	"natureshare-pipeline/core/domain"
	coreerrors "natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/interfaces"
)

// Writer implements the FeedWriter interface on top of a ContentStore.
// The JSON page is canonical; the RSS and Atom renditions are derived from
// the same structure with only the feed URL extension rewritten.
type Writer struct {
	store interfaces.ContentStore
}

// NewWriter creates a feed writer backed by store.
func NewWriter(store interfaces.ContentStore) *Writer {
	return &Writer{store: store}
}

// WriteFeedPage writes index[_N].json and its .rss.xml/.atom.xml renditions
// under dir.
func (w *Writer) WriteFeedPage(ctx context.Context, dir string, page int, feed domain.Feed) error {
	base := "index"
	if page > 1 {
		base = fmt.Sprintf("index_%d", page)
	}

	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return coreerrors.WrapError(err, "failed to marshal feed page")
	}
	if err := w.store.Put(ctx, dir+"/"+base+".json", append(data, '\n')); err != nil {
		return err
	}

	rendition := buildRendition(feed)

	rss, err := rendition.ToRss()
	if err != nil {
		return coreerrors.WrapError(err, "failed to render rss")
	}
	if err := w.store.Put(ctx, dir+"/"+base+".rss.xml", []byte(rss)); err != nil {
		return err
	}

	atom, err := rendition.ToAtom()
	if err != nil {
		return coreerrors.WrapError(err, "failed to render atom")
	}
	return w.store.Put(ctx, dir+"/"+base+".atom.xml", []byte(atom))
}

// WriteGeoJSON writes index.geo.json under dir.
func (w *Writer) WriteGeoJSON(ctx context.Context, dir string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return coreerrors.WrapError(err, "failed to marshal geo layer")
	}
	return w.store.Put(ctx, dir+"/index.geo.json", append(data, '\n'))
}

// buildRendition maps a feed page onto the gorilla/feeds model shared by
// the RSS and Atom encoders.
func buildRendition(page domain.Feed) *feeds.Feed {
	out := &feeds.Feed{
		Title:       page.Title,
		Description: page.Description,
		Link:        &feeds.Link{Href: feedLink(page.FeedURL)},
		Updated:     latestModified(page.Items),
	}
	if page.HomePageURL != "" {
		out.Link = &feeds.Link{Href: page.HomePageURL}
	}
	if page.Author != nil {
		out.Author = &feeds.Author{Name: page.Author.Name}
	}

	for _, item := range page.Items {
		entry := &feeds.Item{
			Id:          item.ID,
			Title:       item.Title,
			Description: item.ContentText,
			Link:        &feeds.Link{Href: item.URL},
			Created:     parseTime(item.DatePublished),
			Updated:     parseTime(item.DateModified),
		}
		if item.Author != nil {
			entry.Author = &feeds.Author{Name: item.Author.Name}
		}
		if item.Image != "" {
			entry.Enclosure = &feeds.Enclosure{
				Url:    item.Image,
				Type:   "image/jpeg",
				Length: "0",
			}
		}
		out.Items = append(out.Items, entry)
	}
	return out
}

// feedLink rewrites the canonical page URL extension for renditions.
func feedLink(jsonURL string) string {
	return strings.TrimSuffix(jsonURL, ".json")
}

func parseTime(iso string) time.Time {
	if iso == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return time.Time{}
	}
	return t
}

func latestModified(items []domain.FeedItem) time.Time {
	var latest time.Time
	for _, item := range items {
		if t := parseTime(item.DateModified); t.After(latest) {
			latest = t
		}
	}
	return latest
}
