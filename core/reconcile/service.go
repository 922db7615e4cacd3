// ABOUTME: Source reconciler merges a partial provider record into a canonical item
// ABOUTME: Pure merge with fixed precedence rules; reconciling twice equals reconciling once

package reconcile

import (
	"sort"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/pkg/utils/timeutil"
)

// Service implements the source reconciliation algorithm shared by every
// provider. Adapters differ only in how they map payloads to observations;
// the merge, clean and validate path is this one.
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a new reconciler instance
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{deps: deps}
}

// Reconcile merges a partial item and provider-native metadata into an
// existing canonical item (possibly empty), producing the new canonical
// item. The result is cleaned and schema-validated; an invalid result is
// returned as a ValidationError and the caller leaves prior state untouched.
//
// Precedence: explicit user annotation (partial) beats provider-native
// metadata beats prior state.
func (s *Service) Reconcile(existing, partial domain.Item, native domain.NativeMetadata, sourceTag string) (domain.Item, error) {
	merged := existing

	// Scalar overlay: any field the partial carries wins outright
	if len(partial.ID) != 0 {
		merged.ID = partial.ID
	}
	if partial.Description != "" {
		merged.Description = partial.Description
	}
	if partial.LocationName != "" {
		merged.LocationName = partial.LocationName
	}
	if partial.License != "" {
		merged.License = partial.License
	}
	if partial.Accuracy != nil {
		merged.Accuracy = partial.Accuracy
	}
	if partial.AllowComments != nil {
		merged.AllowComments = partial.AllowComments
	}
	if len(partial.Source) != 0 {
		merged.Source = partial.Source
	}

	// Datetime: provider-native capture time, else user-authored, else
	// prior state. The flag records which one won for downstream trust
	// display.
	photoDatetimeUsed := native.Datetime != ""
	switch {
	case native.Datetime != "":
		merged.Datetime = native.Datetime
	case partial.Datetime != "":
		merged.Datetime = partial.Datetime
	}
	merged.PhotoDatetimeUsed = &photoDatetimeUsed

	// Location: existing is overridden by native GPS which is overridden
	// by an explicit user override; invalid pairs drop out entirely
	loc := locationFromPtrs(existing.Latitude, existing.Longitude)
	if l := locationFromPtrs(native.Latitude, native.Longitude); l != nil {
		loc = l
	}
	if l := locationFromPtrs(partial.Latitude, partial.Longitude); l != nil {
		loc = l
	}
	if loc != nil {
		merged.Latitude = &loc.Latitude
		merged.Longitude = &loc.Longitude
	} else {
		merged.Latitude = nil
		merged.Longitude = nil
	}

	// Set fields: union, dedup, drop falsy, sort
	merged.Tags = unionStrings(existing.Tags, partial.Tags, native.Tags, []string{sourceTag})
	merged.Collections = unionStrings(existing.Collections, partial.Collections)

	// Media: union by ID, new observation wins on collision, sorted by ID
	// so that primary-image selection is deterministic
	merged.Photos = MergeMedia(existing.Photos, native.Photos)
	merged.Videos = MergeMedia(existing.Videos, native.Videos)
	merged.Audio = MergeMedia(existing.Audio, native.Audio)

	merged.Comments = mergeComments(existing.Comments, partial.Comments)

	// created_at is set once on first creation and never recomputed;
	// updated_at never regresses
	merged.CreatedAt = firstNonEmpty(existing.CreatedAt, native.CreatedAt, partial.CreatedAt)
	merged.UpdatedAt = timeutil.Latest(existing.UpdatedAt, timeutil.Latest(native.UpdatedAt, partial.UpdatedAt))

	merged.Clean()

	if !merged.IsValid() {
		return domain.Item{}, &errors.ValidationError{
			Schema:  interfaces.SchemaItem,
			Message: "item has no media and no identification",
		}
	}

	if s.deps.Validator != nil {
		if err := s.deps.Validator.Validate(&merged, interfaces.SchemaItem); err != nil {
			return domain.Item{}, err
		}
	}

	return merged, nil
}

// MergeMedia unions two media lists deduplicated by ID. Incoming entries win
// on ID collision; the result is sorted by ID ascending so ordering is
// independent of fetch order.
func MergeMedia(existing, incoming []domain.Media) []domain.Media {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}

	byID := make(map[string]domain.Media, len(existing)+len(incoming))
	for _, m := range existing {
		if m.ID != "" {
			byID[m.ID] = m
		}
	}
	for _, m := range incoming {
		if m.ID != "" {
			byID[m.ID] = m
		}
	}

	out := make([]domain.Media, 0, len(byID))
	for _, m := range byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if len(out) == 0 {
		return nil
	}
	return out
}

// unionStrings merges string sets: deduplicated, falsy entries dropped,
// sorted lexicographically.
func unionStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// mergeComments appends unseen incoming comments to the existing list.
// Comments are append-only; the merged list is ordered by creation time for
// a deterministic result.
func mergeComments(existing, incoming []domain.Comment) []domain.Comment {
	if len(incoming) == 0 {
		return existing
	}

	seen := make(map[string]bool, len(existing))
	out := make([]domain.Comment, 0, len(existing)+len(incoming))
	for _, c := range existing {
		seen[commentKey(c)] = true
		out = append(out, c)
	}
	for _, c := range incoming {
		if key := commentKey(c); !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].Ref < out[j].Ref
	})
	return out
}

func commentKey(c domain.Comment) string {
	if c.Ref != "" {
		return c.Ref
	}
	return c.CreatedAt + "|" + c.Username + "|" + c.Text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
