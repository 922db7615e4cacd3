// ABOUTME: Observation is the unit a provider adapter hands to the reconciler
// ABOUTME: NativeMetadata carries provider-native EXIF/API values, ranked below user annotations

package domain

// NativeMetadata holds values the provider derived automatically (EXIF time,
// GPS position, API timestamps, media records). During reconciliation these
// rank above prior state but below explicit user annotations.
type NativeMetadata struct {
	// Datetime is the provider-native capture time (EXIF / photo metadata)
	Datetime string

	// Latitude/Longitude from provider GPS data; nil when absent
	Latitude  *float64
	Longitude *float64

	// Tags contributed by the provider (e.g. flickr machine tags)
	Tags []string

	// Media observed on the provider, merged into the canonical item
	// deduplicated by media ID
	Photos []Media
	Videos []Media
	Audio  []Media

	// CreatedAt is the provider's creation time, used once on first
	// creation; UpdatedAt is the provider's modification time
	CreatedAt string
	UpdatedAt string
}

// Location returns the native coordinates when both are present.
func (n *NativeMetadata) Location() (lat, lon float64, ok bool) {
	if n.Latitude == nil || n.Longitude == nil {
		return 0, 0, false
	}
	return *n.Latitude, *n.Longitude, true
}

// Observation is one provider record mapped into pipeline terms: a partial
// item (user-authored annotations extracted from captions or API fields)
// plus native metadata, addressed at a store path component.
type Observation struct {
	// Slug is the item file name without extension
	Slug string

	// Year is the directory component derived from the creation time
	Year string

	// Partial carries explicit user-authored fields; it may be empty
	Partial Item

	// Native carries provider-derived metadata
	Native NativeMetadata

	// RequireMedia marks observations from photo providers, which must
	// produce a sharable item
	RequireMedia bool
}
