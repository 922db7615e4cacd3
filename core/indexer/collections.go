// ABOUTME: Collection aggregation: per-collection aggregate feeds and roll-up indexes
// ABOUTME: Reads member pages across users, applies allow-lists, publishes aggregates

package indexer

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"natureshare-pipeline/core/collection"
	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/feed"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/pkg/utils/html"
	"natureshare-pipeline/pkg/utils/markdown"
	"natureshare-pipeline/pkg/utils/slug"
)

const memberPageCacheTTL = 10 * time.Minute

// IndexUserCollections aggregates every collection one user owns. A
// collection exists when it has a config file or when member pages for it
// were produced by item indexing; either alone is enough. Missing member
// pages read as zero items, never as an error.
func (s *Service) IndexUserCollections(ctx context.Context, user string) error {
	configs, err := s.loadCollectionConfigs(ctx, user)
	if err != nil {
		return err
	}
	if err := s.discoverCollections(ctx, user, configs); err != nil {
		return err
	}

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	rollup := make(map[string][]domain.FeedItem)

	for _, name := range names {
		cfg := configs[name]

		items, err := s.collectMembers(ctx, user, name, cfg)
		if err != nil {
			return err
		}

		items = collection.ResolveView(items, cfg)
		feed.SortFeedItems(items)

		if len(items) != 0 {
			if err := s.publishAggregate(ctx, user, name, cfg, items); err != nil {
				return err
			}
		}
		if !cfg.Hide && len(items) != 0 {
			rollup[name] = items
		}
	}

	return s.publishCollectionRollup(ctx, user, configs, rollup)
}

// loadCollectionConfigs reads the user's collection YAML files.
func (s *Service) loadCollectionConfigs(ctx context.Context, user string) (map[string]domain.Collection, error) {
	paths, err := s.deps.Store.List(ctx, user+"/collections/*.yaml")
	if err != nil {
		return nil, err
	}

	configs := make(map[string]domain.Collection)
	for _, p := range paths {
		name := strings.TrimSuffix(p[strings.LastIndex(p, "/")+1:], ".yaml")

		data, err := s.deps.Store.Get(ctx, p)
		if err != nil {
			return nil, err
		}

		var cfg domain.Collection
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			s.logWarn("skipping unparseable collection config", map[string]interface{}{
				"path":  p,
				"error": err.Error(),
			})
			continue
		}
		if s.deps.Validator != nil {
			if err := s.deps.Validator.Validate(&cfg, interfaces.SchemaCollection); err != nil {
				s.logWarn("skipping invalid collection config", map[string]interface{}{
					"path":  p,
					"error": err.Error(),
				})
				continue
			}
		}
		if cfg.Title == "" {
			cfg.Title = domain.DefaultCollectionTitle(name)
		}
		configs[name] = cfg
	}
	return configs, nil
}

// discoverCollections adds collections that have member pages from item
// indexing but no config file.
func (s *Service) discoverCollections(ctx context.Context, user string, configs map[string]domain.Collection) error {
	paths, err := s.deps.Store.List(ctx, user+"/_index/collections/*/index.json")
	if err != nil {
		return err
	}
	for _, p := range paths {
		segments := strings.Split(p, "/")
		name := segments[len(segments)-2]
		if _, ok := configs[name]; !ok {
			configs[name] = domain.Collection{Title: domain.DefaultCollectionTitle(name)}
		}
	}
	return nil
}

// collectMembers gathers the collection's items: extra items grafted in by
// config, then every member page of the owner, admins and members.
func (s *Service) collectMembers(ctx context.Context, owner, name string, cfg domain.Collection) ([]domain.FeedItem, error) {
	var items []domain.FeedItem

	for _, extra := range uniqStrings(cfg.ExtraItems) {
		entry, ok := s.loadExtraItem(ctx, extra)
		if ok {
			items = append(items, entry)
		}
	}

	users := uniqStrings(append(append([]string{owner}, cfg.Admins...), cfg.Members...))
	for _, member := range users {
		pages, err := s.loadMemberPages(ctx, member, name)
		if err != nil {
			return nil, err
		}
		items = append(items, pages...)
	}
	return items, nil
}

// loadExtraItem loads one grafted item path of the form
// "user/items/provider/year/slug" (a trailing .yaml is accepted). A missing
// or malformed entry is logged and dropped.
func (s *Service) loadExtraItem(ctx context.Context, extra string) (domain.FeedItem, bool) {
	segments := strings.Split(strings.TrimSuffix(extra, ".yaml"), "/")
	if len(segments) < 3 || segments[1] != "items" {
		s.logWarn("malformed extra_items entry", map[string]interface{}{"entry": extra})
		return domain.FeedItem{}, false
	}

	user := segments[0]
	rel := strings.Join(segments[2:], "/") + ".yaml"

	entry, _, err := s.LoadFeedItem(ctx, user, rel)
	if err != nil {
		s.logWarn("skipping missing extra item", map[string]interface{}{
			"entry": extra,
			"error": err.Error(),
		})
		return domain.FeedItem{}, false
	}

	entry.Author = &domain.FeedAuthor{Name: user, URL: s.userURL(user)}
	return entry, true
}

// loadMemberPages walks one member's pages for a collection. Pages beyond
// what the first page's pageCount announces are not chased.
func (s *Service) loadMemberPages(ctx context.Context, member, name string) ([]domain.FeedItem, error) {
	dir := member + "/_index/collections/" + slug.DirName(name)

	var items []domain.FeedItem
	page := 1
	pageCount := 1
	for page <= pageCount {
		f, err := s.loadFeedPage(ctx, dir+"/"+feed.PageFileName(page))
		if err != nil {
			if errors.IsNotFound(err) {
				break
			}
			return nil, err
		}
		items = append(items, f.Items...)
		pageCount = f.Meta.PageCount
		page++
	}
	return items, nil
}

// loadFeedPage reads one previously generated feed page, via the cache when
// one is configured. Global aggregation re-reads the same member pages many
// times over; the cache keeps that from hitting the store each time.
func (s *Service) loadFeedPage(ctx context.Context, path string) (*domain.Feed, error) {
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, "feedpage:"+path); err == nil {
			var f domain.Feed
			if err := json.Unmarshal(data, &f); err == nil {
				return &f, nil
			}
		}
	}

	data, err := s.deps.Store.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var f domain.Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &errors.StoreError{Op: "parse", Path: path, Err: err}
	}

	if s.deps.Cache != nil {
		_ = s.deps.Cache.Set(ctx, "feedpage:"+path, data, memberPageCacheTTL)
	}
	return &f, nil
}

// publishAggregate writes the collection's aggregate feed.
func (s *Service) publishAggregate(ctx context.Context, user, name string, cfg domain.Collection, items []domain.FeedItem) error {
	dir := user + "/_index/collections/" + slug.DirName(name) + "/aggregate"

	description := html.StripTags(cfg.Description)
	display := &domain.FeedDisplay{
		DescriptionHTML: markdown.Render(cfg.Description),
	}
	if cfg.Display != nil {
		display.SortBy = cfg.Display.SortBy
		display.SortOrder = cfg.Display.SortOrder
		display.StartTags = cfg.Display.StartTags
	}

	return s.feeds.Publish(ctx, dir, items, feed.Meta{
		Title:       cfg.Title,
		Description: description,
		Author:      &domain.FeedAuthor{Name: user, URL: s.userURL(user)},
		HomePageURL: s.feedViewURL(s.contentURL(dir, "index.json")),
		FeedBaseURL: s.feedBaseURL(dir),
		Display:     display,
	})
}

// publishCollectionRollup writes the per-user collections index, one entry
// per visible non-empty collection.
func (s *Service) publishCollectionRollup(ctx context.Context, user string, configs map[string]domain.Collection, rollup map[string][]domain.FeedItem) error {
	names := make([]string, 0, len(rollup))
	for name := range rollup {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]domain.FeedItem, 0, len(names))
	for _, name := range names {
		cfg := configs[name]
		items := rollup[name]

		id := s.contentURL(user, "_index", "collections", slug.DirName(name), "aggregate", "index.json")
		entry := feed.RollupItem(id, s.feedViewURL(id), name, items)
		entry.Title = cfg.Title

		// Config coordinates beat the computed average
		if cfg.Latitude != nil && cfg.Longitude != nil && domain.ValidCoords(*cfg.Latitude, *cfg.Longitude) {
			entry.Geo = &domain.FeedGeo{
				Coordinates: []float64{
					domain.RoundCoord(*cfg.Longitude),
					domain.RoundCoord(*cfg.Latitude),
				},
			}
		}

		idCount, tagCount := facetCounts(items)
		entry.Meta.Name = name
		entry.Meta.Featured = cfg.Featured
		entry.Meta.IDCount = idCount
		entry.Meta.TagCount = tagCount

		entries = append(entries, entry)
	}

	dir := user + "/_index/collections"
	return s.feeds.Publish(ctx, dir, entries, feed.Meta{
		Title:       "Collections",
		Author:      &domain.FeedAuthor{Name: user, URL: s.userURL(user)},
		HomePageURL: s.feedViewURL(s.contentURL(dir, "index.json")),
		FeedBaseURL: s.feedBaseURL(dir),
	})
}

// IndexGlobalCollections groups every user's collection roll-up entries by
// collection name and publishes the cross-user feeds plus the global index.
// Only collections whose largest member feed reaches the roll-up threshold
// appear in the global index.
func (s *Service) IndexGlobalCollections(ctx context.Context) error {
	paths, err := s.deps.Store.List(ctx, "*/_index/collections/index.json")
	if err != nil {
		return err
	}

	groups := make(map[string][]domain.FeedItem)
	for _, p := range paths {
		user := strings.SplitN(p, "/", 2)[0]
		if user == "" || user[0] == '_' || user[0] == '.' {
			continue
		}

		f, err := s.loadFeedPage(ctx, p)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return err
		}

		for _, entry := range f.Items {
			if entry.Meta == nil || entry.Meta.Name == "" {
				continue
			}
			userEntry := entry
			userEntry.Title = user
			groups[entry.Meta.Name] = append(groups[entry.Meta.Name], userEntry)
		}
	}

	s.logInfo("global collections", map[string]interface{}{"count": len(groups)})

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	author := &domain.FeedAuthor{Name: "All Collections", URL: s.opts.AppHost + "collections"}
	maxItems := make(map[string]int, len(groups))

	for _, name := range names {
		items := groups[name]
		feed.SortFeedItems(items)
		groups[name] = items

		for _, entry := range items {
			if entry.Meta != nil && entry.Meta.ItemCount > maxItems[name] {
				maxItems[name] = entry.Meta.ItemCount
			}
		}

		dir := "_collections/" + name
		err := s.feeds.Publish(ctx, dir, items, feed.Meta{
			Title:       domain.DefaultCollectionTitle(name),
			Description: "All users for [" + name + "]",
			Author:      author,
			HomePageURL: s.feedViewURL(s.contentURL(dir, "index.json")),
			FeedBaseURL: s.feedBaseURL(dir),
		})
		if err != nil {
			return err
		}
	}

	entries := make([]domain.FeedItem, 0, len(names))
	for _, name := range names {
		if maxItems[name] < s.opts.MinRollupItems {
			continue
		}
		items := groups[name]

		id := s.contentURL("_collections", name, "index.json")
		if len(items) == 1 {
			id = items[0].ID
		}

		entry := feed.RollupItem(id, s.feedViewURL(id), name, items)
		entry.Meta.ItemCount = maxItems[name]
		entry.Meta.UserCount = len(items)
		entries = append(entries, entry)
	}

	return s.feeds.Publish(ctx, "_collections", entries, feed.Meta{
		Title:       "All Collections",
		Author:      author,
		HomePageURL: s.opts.AppHost + "collections",
		FeedBaseURL: s.feedBaseURL("_collections"),
	})
}

// facetCounts counts the distinct id~ and tag~ facets across items.
func facetCounts(items []domain.FeedItem) (idCount, tagCount int) {
	ids := make(map[string]bool)
	tags := make(map[string]bool)
	for i := range items {
		for _, t := range items[i].Tags {
			switch {
			case strings.HasPrefix(t, "id~"):
				ids[t] = true
			case strings.HasPrefix(t, "tag~"):
				tags[t] = true
			}
		}
	}
	return len(ids), len(tags)
}

func uniqStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
