// ABOUTME: Dropbox provider adapter mapping folder listings to observations
// ABOUTME: An image only imports when a sidecar caption file parses to a partial item

package providers

import (
	"context"
	"strings"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/core/reconcile"
	"natureshare-pipeline/pkg/utils/slug"
)

// Dropbox fetches a user's folder listing from a dropbox proxy endpoint.
// The proxy resolves the SDK plumbing (shared links, media info, sidecar
// download) into one entry per image; this adapter only maps entries.
type Dropbox struct {
	deps        interfaces.Dependencies
	endpoint    string
	contentHost string
	captions    interfaces.CaptionParser
}

// NewDropbox creates the dropbox adapter. contentHost is used to derive the
// thumbnail URL an imported photo will be served from.
func NewDropbox(deps interfaces.Dependencies, endpoint, contentHost string) *Dropbox {
	return &Dropbox{
		deps:        deps,
		endpoint:    endpoint,
		contentHost: contentHost,
		captions:    reconcile.NewService(deps),
	}
}

// Name implements interfaces.Provider.
func (d *Dropbox) Name() string { return "dropbox" }

type dropboxPayload struct {
	Entries []dropboxEntry `json:"entries"`
}

type dropboxEntry struct {
	// Folder is the dropbox folder name, used as the year directory
	Folder string `json:"folder"`

	// Name is the image file name, extension included
	Name string `json:"name"`

	// Caption is the sidecar file's text content
	Caption string `json:"caption"`

	TimeTaken      string   `json:"time_taken"`
	ServerModified string   `json:"server_modified"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`

	// SharedURL is the public share link; ?dl=1 yields the original file
	SharedURL string `json:"shared_url"`
}

// Fetch implements interfaces.Provider.
func (d *Dropbox) Fetch(ctx context.Context, username string) ([]domain.Observation, error) {
	var payload dropboxPayload
	url := d.endpoint + "?username=" + username
	if err := fetchJSON(ctx, d.deps.HTTPClient, url, &payload); err != nil {
		return nil, err
	}

	var observations []domain.Observation
	for _, entry := range payload.Entries {
		partial := d.captions.ParseCaption(entry.Caption)
		if partial == nil {
			continue
		}
		observations = append(observations, d.mapEntry(username, entry, *partial))
	}
	return observations, nil
}

// mapEntry builds one observation from a dropbox listing entry.
func (d *Dropbox) mapEntry(username string, entry dropboxEntry, partial domain.Item) domain.Observation {
	baseName := entry.Name
	if dot := strings.LastIndex(baseName, "."); dot > 0 {
		baseName = baseName[:dot]
	}
	fileSlug := slug.Slugify(baseName)

	thumbnailURL := strings.TrimSuffix(d.contentHost, "/") + "/" +
		strings.Join([]string{username, "items", "dropbox", entry.Folder, fileSlug + ".jpg"}, "/")

	media := domain.Media{
		Source:       "dropbox",
		ID:           entry.Name,
		Href:         entry.SharedURL,
		Datetime:     entry.TimeTaken,
		Width:        entry.Width,
		Height:       entry.Height,
		ThumbnailURL: thumbnailURL,
		OriginalURL:  strings.Replace(entry.SharedURL, "dl=0", "dl=1", 1),
	}

	native := domain.NativeMetadata{
		Datetime:  entry.TimeTaken,
		Photos:    []domain.Media{media},
		CreatedAt: entry.TimeTaken,
		UpdatedAt: entry.ServerModified,
	}
	if entry.Latitude != nil && entry.Longitude != nil {
		if loc := reconcile.GetValidLocationFloat(*entry.Latitude, *entry.Longitude); loc != nil {
			native.Latitude = &loc.Latitude
			native.Longitude = &loc.Longitude
		}
	}

	return domain.Observation{
		Slug:         fileSlug,
		Year:         entry.Folder,
		Partial:      partial,
		Native:       native,
		RequireMedia: true,
	}
}
