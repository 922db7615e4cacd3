// ABOUTME: FeedWriter is the sink for generated feed pages and geo layers
// ABOUTME: One JSON page fans out to RSS and Atom renditions, all derived from the same structure

package interfaces

import (
	"context"

	geojson "github.com/paulmach/go.geojson"

	"natureshare-pipeline/core/domain"
)

// FeedWriter persists derived feed artifacts. Implementations write the
// canonical JSON page plus RSS and Atom renditions derived byte-for-byte
// from the same structure, and one GeoJSON layer per feed.
type FeedWriter interface {
	// WriteFeedPage writes index[_N].json and its .rss.xml/.atom.xml
	// renditions under dir. Page numbering starts at 1 (unsuffixed).
	WriteFeedPage(ctx context.Context, dir string, page int, feed domain.Feed) error

	// WriteGeoJSON writes index.geo.json under dir.
	WriteGeoJSON(ctx context.Context, dir string, fc *geojson.FeatureCollection) error
}
