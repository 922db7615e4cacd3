// ABOUTME: Collection resolver filters member items into a collection's aggregate view
// ABOUTME: View-only: allow-lists strip facets from the projection, never from canonical items

package collection

import (
	"strings"

	"natureshare-pipeline/core/domain"
)

const (
	idPrefix  = "id~"
	tagPrefix = "tag~"
)

// ResolveView applies a collection's identification and tag allow-lists to a
// set of member feed items, returning the filtered view. Input items are
// deduplicated by ID (true duplicates are assumed identical). The result is
// unsorted; callers order it with the feed aggregator.
func ResolveView(items []domain.FeedItem, cfg domain.Collection) []domain.FeedItem {
	items = dedupeByID(items)

	if len(cfg.Identifications) != 0 {
		items = filterByIdentifications(items, cfg.Identifications)
		items = applyIdentificationTags(items, cfg.Identifications)
	}

	if len(cfg.Tags) != 0 {
		items = filterTags(items, cfg)
	}

	return dedupeByID(items)
}

// dedupeByID keeps the first occurrence of each feed item ID.
func dedupeByID(items []domain.FeedItem) []domain.FeedItem {
	seen := make(map[string]bool, len(items))
	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		if item.ID != "" && seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

// filterByIdentifications keeps only items carrying at least one allowed
// id~ facet, and strips disallowed id~ facets from the kept items. Items may
// carry identifications irrelevant to this collection; those are hidden in
// this view only.
func filterByIdentifications(items []domain.FeedItem, ids []domain.CollectionIdentification) []domain.FeedItem {
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id.Name != "" {
			allowed[idPrefix+id.Name] = true
		}
	}

	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		keep := false
		for _, t := range item.Tags {
			if allowed[t] {
				keep = true
				break
			}
		}
		if !keep {
			continue
		}

		filtered := item
		filtered.Tags = make([]string, 0, len(item.Tags))
		for _, t := range item.Tags {
			if strings.HasPrefix(t, idPrefix) && !allowed[t] {
				continue
			}
			filtered.Tags = append(filtered.Tags, t)
		}
		out = append(out, filtered)
	}
	return out
}

// applyIdentificationTags contributes each identification's extra tag~
// facets to every item carrying that identification.
func applyIdentificationTags(items []domain.FeedItem, ids []domain.CollectionIdentification) []domain.FeedItem {
	extra := make(map[string][]string)
	for _, id := range ids {
		if id.Name == "" || len(id.Tags) == 0 {
			continue
		}
		tags := make([]string, 0, len(id.Tags))
		for _, t := range id.Tags {
			tags = append(tags, tagPrefix+t)
		}
		extra[idPrefix+id.Name] = tags
	}
	if len(extra) == 0 {
		return items
	}

	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		contributed := item
		contributed.Tags = append([]string(nil), item.Tags...)
		seen := make(map[string]bool, len(item.Tags))
		for _, t := range item.Tags {
			seen[t] = true
		}
		for _, t := range item.Tags {
			for _, e := range extra[t] {
				if !seen[e] {
					seen[e] = true
					contributed.Tags = append(contributed.Tags, e)
				}
			}
		}
		out = append(out, contributed)
	}
	return out
}

// filterTags strips tag~ facets not named by the collection's tag allow-list.
// Facets contributed by identification mappings are folded into the
// allow-set so step 3 contributions always survive step 4.
func filterTags(items []domain.FeedItem, cfg domain.Collection) []domain.FeedItem {
	allowed := make(map[string]bool, len(cfg.Tags))
	for _, t := range cfg.Tags {
		allowed[tagPrefix+t] = true
	}
	for _, id := range cfg.Identifications {
		for _, t := range id.Tags {
			allowed[tagPrefix+t] = true
		}
	}

	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		filtered := item
		filtered.Tags = make([]string, 0, len(item.Tags))
		for _, t := range item.Tags {
			if strings.HasPrefix(t, tagPrefix) && !allowed[t] {
				continue
			}
			filtered.Tags = append(filtered.Tags, t)
		}
		out = append(out, filtered)
	}
	return out
}
