// ABOUTME: Index builder orchestration: items, collections, users and global roll-ups
// ABOUTME: Walks the content tree via the store and publishes derived feeds via the aggregator

package indexer

import (
	"context"
	"net/url"
	"path"
	"sort"
	"strings"

	"natureshare-pipeline/core/feed"
	"natureshare-pipeline/core/interfaces"
)

// Options carries the site identity and aggregation tunables.
type Options struct {
	// AppName is the site display name used on the all-users feed
	AppName string

	// AppHost is the web application base URL, trailing slash included
	AppHost string

	// ContentHost is the public base URL the content tree is served from
	ContentHost string

	// PageSize is the feed page size; zero means the aggregator default
	PageSize int

	// MinRollupItems is the minimum member item count for a collection to
	// appear in the global roll-up index
	MinRollupItems int
}

// Service builds the derived index trees. All file access goes through the
// injected store; the service itself holds no filesystem state.
type Service struct {
	deps  interfaces.Dependencies
	feeds *feed.Service
	opts  Options
}

// NewService creates an index builder.
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	if opts.MinRollupItems <= 0 {
		opts.MinRollupItems = 10
	}
	return &Service{
		deps:  deps,
		feeds: feed.NewService(deps, opts.PageSize),
		opts:  opts,
	}
}

// Users enumerates user directories from the documents present in the
// content tree. Underscore-prefixed directories hold derived global indexes
// and are never users.
func (s *Service) Users(ctx context.Context) ([]string, error) {
	patterns := []string{
		"*/profile.yaml",
		"*/items/*/*/*.yaml",
		"*/collections/*.yaml",
	}

	seen := make(map[string]bool)
	for _, pattern := range patterns {
		paths, err := s.deps.Store.List(ctx, pattern)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			user := strings.SplitN(p, "/", 2)[0]
			if user == "" || user[0] == '_' || user[0] == '.' {
				continue
			}
			seen[user] = true
		}
	}

	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

// IndexAll rebuilds every derived index. User item indexes are completed for
// all users before any collection aggregation starts, because collections
// read other users' member pages.
func (s *Service) IndexAll(ctx context.Context) error {
	users, err := s.Users(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		if err := s.IndexUserItems(ctx, user); err != nil {
			return err
		}
	}
	for _, user := range users {
		if err := s.IndexUserCollections(ctx, user); err != nil {
			return err
		}
	}
	if err := s.IndexUsers(ctx); err != nil {
		return err
	}
	return s.IndexGlobalCollections(ctx)
}

// contentURL builds the public URL of a content tree path.
func (s *Service) contentURL(parts ...string) string {
	return strings.TrimSuffix(s.opts.ContentHost, "/") + "/" + path.Join(parts...)
}

// itemViewURL is the app page rendering a single item feed entry.
func (s *Service) itemViewURL(id string) string {
	return s.opts.AppHost + "item?i=" + url.QueryEscape(id)
}

// feedViewURL is the app page rendering a feed.
func (s *Service) feedViewURL(id string) string {
	return s.opts.AppHost + "items?i=" + url.QueryEscape(id)
}

// userURL is the app page for a user's item feed.
func (s *Service) userURL(user string) string {
	return s.feedViewURL(s.contentURL(user, "_index", "items", "index.json"))
}

// feedBaseURL is the public URL prefix for pages written under dir.
func (s *Service) feedBaseURL(dir string) string {
	return s.contentURL(dir) + "/"
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}
