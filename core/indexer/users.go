// ABOUTME: All-users index built from profiles and each user's item feed
// ABOUTME: A user without a profile file is skipped with a log line, never an error

package indexer

import (
	"context"

	"gopkg.in/yaml.v3"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/feed"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/pkg/utils/timeutil"
)

const bioMaxLength = 255

// IndexUsers publishes the all-users feed under _users. Each entry points at
// the user's item feed and summarizes it: latest dates, first image, item
// count and average coordinate from the most recent page.
func (s *Service) IndexUsers(ctx context.Context) error {
	users, err := s.Users(ctx)
	if err != nil {
		return err
	}

	var entries []domain.FeedItem
	for _, user := range users {
		entry, ok, err := s.userEntry(ctx, user)
		if err != nil {
			return err
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	return s.feeds.Publish(ctx, "_users", entries, feed.Meta{
		Title:       s.opts.AppName,
		Author:      &domain.FeedAuthor{Name: s.opts.AppName, URL: s.opts.AppHost},
		HomePageURL: s.opts.AppHost,
		FeedBaseURL: s.feedBaseURL("_users"),
	})
}

// userEntry builds one all-users feed entry, or reports ok=false when the
// user has no profile.
func (s *Service) userEntry(ctx context.Context, user string) (domain.FeedItem, bool, error) {
	data, err := s.deps.Store.Get(ctx, user+"/profile.yaml")
	if err != nil {
		if errors.IsNotFound(err) {
			s.logWarn("profile not found", map[string]interface{}{"user": user})
			return domain.FeedItem{}, false, nil
		}
		return domain.FeedItem{}, false, err
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		s.logWarn("skipping unparseable profile", map[string]interface{}{
			"user":  user,
			"error": err.Error(),
		})
		return domain.FeedItem{}, false, nil
	}
	if s.deps.Validator != nil {
		if err := s.deps.Validator.Validate(&profile, interfaces.SchemaProfile); err != nil {
			s.logWarn("skipping invalid profile", map[string]interface{}{
				"user":  user,
				"error": err.Error(),
			})
			return domain.FeedItem{}, false, nil
		}
	}

	id := s.contentURL(user, "_index", "items", "index.json")

	entry := domain.FeedItem{
		ID:          id,
		URL:         s.feedViewURL(id),
		Title:       profile.Name,
		ContentText: bioText(profile.Bio),
	}
	if entry.Title == "" {
		entry.Title = user
	}
	if profile.Joined != "" {
		entry.DatePublished = profile.Joined + "-01-01T00:00:00Z"
		entry.DateModified = entry.DatePublished
	}

	itemCount := 0
	if f, err := s.loadFeedPage(ctx, user+"/_index/items/index.json"); err == nil {
		itemCount = f.Meta.ItemCount
		if len(f.Items) != 0 {
			entry.DatePublished = f.Items[0].DatePublished
			entry.DateModified = f.Items[0].DateModified
			for i := range f.Items {
				if f.Items[i].Image != "" {
					entry.Image = f.Items[i].Image
					break
				}
			}
			if coord := feed.AverageCoord(f.Items); coord != nil {
				entry.Geo = &domain.FeedGeo{Coordinates: coord}
			}
		}
	} else if !errors.IsNotFound(err) {
		return domain.FeedItem{}, false, err
	}

	meta := domain.FeedItemMeta{
		ItemCount: itemCount,
		Date:      timeutil.DatePart(entry.DateModified),
	}
	if meta != (domain.FeedItemMeta{}) {
		entry.Meta = &meta
	}
	return entry, true, nil
}

func bioText(bio string) string {
	if bio == "" {
		return "-"
	}
	return truncate(bio, bioMaxLength)
}
