// ABOUTME: Provider is the adapter contract for third-party observation sources
// ABOUTME: Adapters map raw provider payloads into Observations; merge logic is shared

package interfaces

import (
	"context"

	"natureshare-pipeline/core/domain"
)

// Provider adapts one third-party source (dropbox, flickr, inaturalist)
// into pipeline terms. Adapters only map payloads; the reconcile/validate/
// persist path is shared and lives in the importer.
type Provider interface {
	// Name is the provider tag recorded on imported items ("flickr",
	// "dropbox", ...) and the directory component of item paths.
	Name() string

	// Fetch returns the current observations for a user. Fetch errors are
	// per-user failures; the importer logs and moves to the next user.
	Fetch(ctx context.Context, username string) ([]domain.Observation, error)
}

// CaptionParser extracts a user-authored partial item embedded in a caption
// or description. A caption with no parseable embedded document returns nil.
type CaptionParser interface {
	ParseCaption(text string) *domain.Item
}
