// ABOUTME: Projection of a canonical item YAML file into a feed entry
// ABOUTME: The feed entry id is the item's public content URL

package indexer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
	"natureshare-pipeline/pkg/utils/timeutil"
)

const titleMaxLength = 64

// LoadFeedItem reads a canonical item file and projects it into a feed
// entry, returning the entry together with the item's collection names.
// relPath is relative to the user's items directory.
func (s *Service) LoadFeedItem(ctx context.Context, user, relPath string) (domain.FeedItem, []string, error) {
	itemPath := user + "/items/" + relPath

	data, err := s.deps.Store.Get(ctx, itemPath)
	if err != nil {
		return domain.FeedItem{}, nil, err
	}

	var item domain.Item
	if err := yaml.Unmarshal(data, &item); err != nil {
		return domain.FeedItem{}, nil, &errors.StoreError{Op: "parse", Path: itemPath, Err: err}
	}

	return s.projectItem(itemPath, &item), item.Collections, nil
}

// projectItem builds the feed entry for one canonical item.
func (s *Service) projectItem(itemPath string, item *domain.Item) domain.FeedItem {
	id := s.contentURL(itemPath)
	names := item.IdentificationNames()

	entry := domain.FeedItem{
		ID:            id,
		URL:           s.itemViewURL(id),
		Title:         itemTitle(names),
		ContentText:   contentText(item.Description),
		Image:         item.PrimaryImage(),
		DatePublished: item.CreatedAt,
		DateModified:  item.UpdatedAt,
		Tags:          facetTags(names, item.Tags),
	}

	if item.Latitude != nil && item.Longitude != nil {
		entry.Geo = &domain.FeedGeo{
			Coordinates: []float64{
				domain.RoundCoord(*item.Longitude),
				domain.RoundCoord(*item.Latitude),
			},
		}
	}

	meta := domain.FeedItemMeta{
		Date:       timeutil.DatePart(item.Datetime),
		ImageCount: len(item.Photos),
		VideoCount: len(item.Videos),
		AudioCount: len(item.Audio),
	}
	if meta != (domain.FeedItemMeta{}) {
		entry.Meta = &meta
	}
	return entry
}

// itemTitle derives a display title from the identification names. Many
// identifications collapse to a count.
func itemTitle(names []string) string {
	switch {
	case len(names) == 0:
		return "Unidentified"
	case len(names) > 2:
		return fmt.Sprintf("%d ids", len(names))
	default:
		return truncate(strings.Join(names, ", "), titleMaxLength)
	}
}

// facetTags builds the namespaced facet list: id~ facets from the
// identifications (id~Unidentified when there are none) followed by sorted,
// deduplicated tag~ facets.
func facetTags(names, tags []string) []string {
	out := make([]string, 0, len(names)+len(tags)+1)
	if len(names) == 0 {
		out = append(out, "id~Unidentified")
	}
	for _, n := range names {
		out = append(out, "id~"+n)
	}

	if len(tags) != 0 {
		seen := make(map[string]bool, len(tags))
		uniq := make([]string, 0, len(tags))
		for _, t := range tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			uniq = append(uniq, t)
		}
		sort.Strings(uniq)
		for _, t := range uniq {
			out = append(out, "tag~"+t)
		}
	}
	return out
}

func contentText(description string) string {
	if description == "" {
		return "-"
	}
	return description
}

// truncate shortens a string to max runes, ellipsis included.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
