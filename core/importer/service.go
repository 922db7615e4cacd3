// ABOUTME: Importer runs a provider fetch and persists reconciled items
// ABOUTME: Per-record failures skip and continue; store failures abort the run

package importer

import (
	"context"

	"gopkg.in/yaml.v3"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/core/reconcile"
	"natureshare-pipeline/pkg/utils/timeutil"
)

// Stats summarizes one import run.
type Stats struct {
	Imported int
	Skipped  int
	Invalid  int
}

// Service is the shared import path: fetch observations from a provider,
// reconcile each against the existing canonical item and persist the result.
type Service struct {
	deps       interfaces.Dependencies
	reconciler *reconcile.Service
	policy     errors.InvalidRecordPolicy
}

// NewService creates an importer with the default skip-and-continue policy
// for invalid records.
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		deps:       deps,
		reconciler: reconcile.NewService(deps),
		policy:     errors.SkipRecord,
	}
}

// WithPolicy overrides the invalid-record policy.
func (s *Service) WithPolicy(policy errors.InvalidRecordPolicy) *Service {
	s.policy = policy
	return s
}

// Run imports one user's observations from a provider. An observation whose
// provider-side modification time is not newer than the stored item is
// skipped without reconciling; re-running an import is always safe.
func (s *Service) Run(ctx context.Context, provider interfaces.Provider, username string) (Stats, error) {
	var stats Stats

	observations, err := provider.Fetch(ctx, username)
	if err != nil {
		return stats, err
	}

	for _, obs := range observations {
		itemPath := username + "/items/" + provider.Name() + "/" + obs.Year + "/" + obs.Slug + ".yaml"

		existing, ok := s.loadExisting(ctx, itemPath)
		if !ok {
			stats.Skipped++
			continue
		}

		if existing.UpdatedAt != "" && obs.Native.UpdatedAt != "" &&
			!timeutil.After(obs.Native.UpdatedAt, existing.UpdatedAt) {
			stats.Skipped++
			continue
		}

		merged, err := s.reconciler.Reconcile(existing, obs.Partial, obs.Native, provider.Name())
		if err != nil {
			if errors.IsValidation(err) {
				stats.Invalid++
				s.deps.Logger.Warn("discarding invalid record", map[string]interface{}{
					"path":  itemPath,
					"error": err.Error(),
				})
				if s.policy == errors.AbortRun {
					return stats, err
				}
				continue
			}
			return stats, err
		}

		if obs.RequireMedia && !merged.IsSharable() {
			stats.Invalid++
			s.deps.Logger.Warn("discarding record without media", map[string]interface{}{
				"path": itemPath,
			})
			continue
		}

		data, err := yaml.Marshal(&merged)
		if err != nil {
			return stats, &errors.StoreError{Op: "marshal", Path: itemPath, Err: err}
		}
		if err := s.deps.Store.Put(ctx, itemPath, data); err != nil {
			return stats, err
		}
		stats.Imported++
	}

	s.deps.Logger.Info("import finished", map[string]interface{}{
		"provider": provider.Name(),
		"user":     username,
		"imported": stats.Imported,
		"skipped":  stats.Skipped,
		"invalid":  stats.Invalid,
	})
	return stats, nil
}

// loadExisting reads the stored item at path. Missing reads as an empty
// item; an unparseable file is an inconsistent-state skip.
func (s *Service) loadExisting(ctx context.Context, path string) (domain.Item, bool) {
	data, err := s.deps.Store.Get(ctx, path)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Item{}, true
		}
		s.deps.Logger.Warn("skipping unreadable item", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return domain.Item{}, false
	}

	var item domain.Item
	if err := yaml.Unmarshal(data, &item); err != nil {
		s.deps.Logger.Warn("skipping unparseable item", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return domain.Item{}, false
	}
	return item, true
}
