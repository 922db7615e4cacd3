// ABOUTME: Feed domain model in JSONFeed shape, the canonical derived artifact
// ABOUTME: FeedItem is the projection of an Item/Collection/User into a feed entry

package domain

// JSONFeedVersion is the version URL stamped on every generated feed page.
const JSONFeedVersion = "https://jsonfeed.org/version/1"

// Feed is one page of a paginated feed. Feeds are derived, disposable and
// fully recomputed on every aggregation run.
type Feed struct {
	Version     string       `json:"version"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Author      *FeedAuthor  `json:"author,omitempty"`
	HomePageURL string       `json:"home_page_url,omitempty"`
	FeedURL     string       `json:"feed_url,omitempty"`

	// NextURL always points at the next-numbered page file, even on the
	// last page; consumers treat a missing page as end of data
	NextURL string `json:"next_url,omitempty"`

	Items   []FeedItem   `json:"items"`
	Display *FeedDisplay `json:"_display,omitempty"`
	Meta    FeedPageMeta `json:"_meta"`
}

// FeedAuthor identifies the feed owner.
type FeedAuthor struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// FeedPageMeta carries pagination bookkeeping. ItemCount is the grand total
// across all pages, not the per-page count.
type FeedPageMeta struct {
	ItemCount  int `json:"itemCount"`
	PageNumber int `json:"pageNumber"`
	PageCount  int `json:"pageCount"`
}

// FeedDisplay is presentation metadata on aggregate feeds.
type FeedDisplay struct {
	SortBy          string   `json:"sort_by,omitempty"`
	SortOrder       string   `json:"sort_order,omitempty"`
	StartTags       []string `json:"start_tags,omitempty"`
	DescriptionHTML string   `json:"description_html,omitempty"`
}

// FeedItem is the projection of an item (or a collection or user, for
// roll-up feeds) into a feed entry. Dates stay as ISO-8601 strings so that
// ordering and output are byte-stable across runs.
type FeedItem struct {
	ID            string      `json:"id"`
	URL           string      `json:"url,omitempty"`
	Title         string      `json:"title,omitempty"`
	ContentText   string      `json:"content_text,omitempty"`
	Image         string      `json:"image,omitempty"`
	DatePublished string      `json:"date_published,omitempty"`
	DateModified  string      `json:"date_modified,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Author        *FeedAuthor `json:"author,omitempty"`
	Geo           *FeedGeo    `json:"_geo,omitempty"`
	Meta          *FeedItemMeta `json:"_meta,omitempty"`
}

// FeedGeo carries a [longitude, latitude] pair.
type FeedGeo struct {
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// FeedItemMeta is derived metadata used for sorting and display.
type FeedItemMeta struct {
	Featured   bool   `json:"featured,omitempty"`
	Name       string `json:"name,omitempty"`
	Date       string `json:"date,omitempty"`
	ItemCount  int    `json:"itemCount,omitempty"`
	ImageCount int    `json:"imageCount,omitempty"`
	VideoCount int    `json:"videoCount,omitempty"`
	AudioCount int    `json:"audioCount,omitempty"`
	UserCount  int    `json:"userCount,omitempty"`
	IDCount    int    `json:"idCount,omitempty"`
	TagCount   int    `json:"tagCount,omitempty"`
}

// Coordinates returns the item's [lon, lat] pair, or nil.
func (fi *FeedItem) Coordinates() []float64 {
	if fi.Geo == nil || len(fi.Geo.Coordinates) != 2 {
		return nil
	}
	return fi.Geo.Coordinates
}

// Featured reports the _meta.featured flag; absent meta sorts as unfeatured.
func (fi *FeedItem) Featured() bool {
	return fi.Meta != nil && fi.Meta.Featured
}

// MetaCounts returns itemCount, imageCount, videoCount and audioCount with
// absent meta reading as zero.
func (fi *FeedItem) MetaCounts() (items, images, videos, audio int) {
	if fi.Meta == nil {
		return 0, 0, 0, 0
	}
	return fi.Meta.ItemCount, fi.Meta.ImageCount, fi.Meta.VideoCount, fi.Meta.AudioCount
}
