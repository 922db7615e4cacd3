// ABOUTME: Per-user item index: the user's item feed plus per-collection member pages
// ABOUTME: Member pages are what other users' collection aggregates import

package indexer

import (
	"context"
	"sort"
	"strings"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/feed"
	"natureshare-pipeline/pkg/utils/slug"
)

// IndexUserItems loads every canonical item of one user, publishes the
// user's item feed and one member page feed per collection the items name.
// Unparseable item files are logged and skipped; the batch continues.
func (s *Service) IndexUserItems(ctx context.Context, user string) error {
	paths, err := s.deps.Store.List(ctx, user+"/items/*/*/*.yaml")
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		s.logInfo("no items for user", map[string]interface{}{"user": user})
		return nil
	}

	author := &domain.FeedAuthor{Name: user, URL: s.userURL(user)}

	var feedItems []domain.FeedItem
	members := make(map[string][]domain.FeedItem)

	for _, p := range paths {
		rel := strings.TrimPrefix(p, user+"/items/")
		entry, collections, err := s.LoadFeedItem(ctx, user, rel)
		if err != nil {
			s.logWarn("skipping unreadable item", map[string]interface{}{
				"path":  p,
				"error": err.Error(),
			})
			continue
		}

		feedItems = append(feedItems, entry)

		withAuthor := entry
		withAuthor.Author = author
		for _, c := range collections {
			if c != "" {
				members[c] = append(members[c], withAuthor)
			}
		}
	}

	itemsDir := user + "/_index/items"
	feedURL := s.contentURL(itemsDir, "index.json")
	err = s.feeds.Publish(ctx, itemsDir, feedItems, feed.Meta{
		Title:       "Items",
		Author:      author,
		HomePageURL: s.feedViewURL(feedURL),
		FeedBaseURL: s.feedBaseURL(itemsDir),
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dir := user + "/_index/collections/" + slug.DirName(name)
		err := s.feeds.Publish(ctx, dir, members[name], feed.Meta{
			Title:       domain.DefaultCollectionTitle(name),
			Author:      author,
			HomePageURL: s.feedViewURL(s.contentURL(dir, "index.json")),
			FeedBaseURL: s.feedBaseURL(dir),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
