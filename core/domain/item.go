// ABOUTME: Item domain model represents one canonical nature observation record
// ABOUTME: Provides cleaning and validity predicates applied before every persistence write

package domain

import (
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one canonical observation record. Field order here is the field
// order persisted to YAML, which keeps output diffs minimal.
type Item struct {
	// ID holds the identification entries (species names) for this observation
	ID []Identification `yaml:"id,omitempty" json:"id,omitempty"`

	// Datetime is the observation time, ISO-8601
	Datetime string `yaml:"datetime,omitempty" json:"datetime,omitempty"`

	// PhotoDatetimeUsed records whether the provider-native photo time was
	// the datetime selected during reconciliation
	PhotoDatetimeUsed *bool `yaml:"photo_datetime_used,omitempty" json:"photo_datetime_used,omitempty"`

	// LocationName is a free-text place name
	LocationName string `yaml:"location_name,omitempty" json:"location_name,omitempty"`

	// Latitude and Longitude are mutually required; absent unless both are
	// present and non-zero
	Latitude  *float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`

	// Accuracy is the location accuracy in metres
	Accuracy *float64 `yaml:"accuracy,omitempty" json:"accuracy,omitempty"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Tags holds free tags and namespaced machine tags ("prefix~value")
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// Collections names the collections this item belongs to
	Collections []string `yaml:"collections,omitempty" json:"collections,omitempty"`

	Photos []Media `yaml:"photos,omitempty" json:"photos,omitempty"`
	Videos []Media `yaml:"videos,omitempty" json:"videos,omitempty"`
	Audio  []Media `yaml:"audio,omitempty" json:"audio,omitempty"`

	License string `yaml:"license,omitempty" json:"license,omitempty"`

	// Source records provenance entries
	Source []SourceRef `yaml:"source,omitempty" json:"source,omitempty"`

	CreatedAt string `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt string `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`

	// Comments is append-only
	Comments []Comment `yaml:"comments,omitempty" json:"comments,omitempty"`

	// AllowComments defaults to true when absent
	AllowComments *bool `yaml:"allow_comments,omitempty" json:"allow_comments,omitempty"`
}

// Identification is a single species identification. In YAML it may appear
// either as a plain string ("Vulpes vulpes") or as a mapping with name,
// common, by and ref keys.
type Identification struct {
	Name   string   `yaml:"name" json:"name"`
	Common string   `yaml:"common,omitempty" json:"common,omitempty"`
	By     []string `yaml:"by,omitempty" json:"by,omitempty"`
	Ref    string   `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// identificationAlias avoids recursing into the custom marshallers.
type identificationAlias Identification

// UnmarshalYAML accepts both the scalar and the mapping form.
func (i *Identification) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		i.Name = strings.TrimSpace(value.Value)
		return nil
	}
	var alias identificationAlias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	*i = Identification(alias)
	return nil
}

// MarshalYAML emits the scalar form when only the name is set, keeping
// hand-authored files diffable.
func (i Identification) MarshalYAML() (interface{}, error) {
	if i.Common == "" && len(i.By) == 0 && i.Ref == "" {
		return i.Name, nil
	}
	return identificationAlias(i), nil
}

// Media is a photo, video or audio attachment. Identity key is ID,
// uniqueness is enforced per item per media kind.
type Media struct {
	Source       string `yaml:"source,omitempty" json:"source,omitempty"`
	ID           string `yaml:"id" json:"id"`
	Href         string `yaml:"href,omitempty" json:"href,omitempty"`
	Datetime     string `yaml:"datetime,omitempty" json:"datetime,omitempty"`
	Width        int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height       int    `yaml:"height,omitempty" json:"height,omitempty"`
	ThumbnailURL string `yaml:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	OriginalURL  string `yaml:"original_url,omitempty" json:"original_url,omitempty"`
	License      string `yaml:"license,omitempty" json:"license,omitempty"`
	Attribution  string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Primary      bool   `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// SourceRef is one provenance entry.
type SourceRef struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href,omitempty" json:"href,omitempty"`
}

// Comment is one comment on an item.
type Comment struct {
	Ref       string `yaml:"ref,omitempty" json:"ref,omitempty"`
	CreatedAt string `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	Username  string `yaml:"username,omitempty" json:"username,omitempty"`
	Text      string `yaml:"text,omitempty" json:"text,omitempty"`
}

const coordPrecision = 1e6

// RoundCoord rounds a coordinate to 6 decimal places.
func RoundCoord(v float64) float64 {
	return math.Round(v*coordPrecision) / coordPrecision
}

// ValidCoords reports whether a latitude/longitude pair is usable.
// Zero is treated as absent rather than a real coordinate.
func ValidCoords(lat, lon float64) bool {
	return lat != 0 && lon != 0 &&
		!math.IsNaN(lat) && !math.IsNaN(lon)
}

// Clean normalizes an item in place: empty tag and collection entries are
// dropped, media without an identity key are dropped, and a half-present or
// zero location is removed entirely rather than defaulting to (0,0).
func (i *Item) Clean() {
	i.Tags = cleanStrings(i.Tags)
	i.Collections = cleanStrings(i.Collections)
	i.Photos = cleanMedia(i.Photos)
	i.Videos = cleanMedia(i.Videos)
	i.Audio = cleanMedia(i.Audio)
	i.ID = cleanIdentifications(i.ID)

	if i.Latitude == nil || i.Longitude == nil || !ValidCoords(*i.Latitude, *i.Longitude) {
		i.Latitude = nil
		i.Longitude = nil
	} else {
		lat := RoundCoord(*i.Latitude)
		lon := RoundCoord(*i.Longitude)
		i.Latitude = &lat
		i.Longitude = &lon
	}

	i.Description = strings.TrimSpace(i.Description)
	i.LocationName = strings.TrimSpace(i.LocationName)
}

// cleanStrings drops empty entries, trims whitespace and nils out an empty result.
func cleanStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cleanMedia(media []Media) []Media {
	if len(media) == 0 {
		return nil
	}
	out := make([]Media, 0, len(media))
	for _, m := range media {
		if m.ID != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cleanIdentifications(ids []Identification) []Identification {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Identification, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id.Name) != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasMedia reports whether the item carries at least one media attachment.
func (i *Item) HasMedia() bool {
	return len(i.Photos) != 0 || len(i.Videos) != 0 || len(i.Audio) != 0
}

// IsValid reports whether the item is worth keeping at all: it must carry
// either media or an identification.
func (i *Item) IsValid() bool {
	return i.HasMedia() || len(i.ID) != 0
}

// IsSharable is the stricter predicate used by photo providers: an item with
// zero media may be valid for some collections but is not sharable.
func (i *Item) IsSharable() bool {
	return i.HasMedia()
}

// AllowsComments reports the allow_comments flag, defaulting to true.
func (i *Item) AllowsComments() bool {
	return i.AllowComments == nil || *i.AllowComments
}

// IdentificationNames returns the unique identification names, sorted.
func (i *Item) IdentificationNames() []string {
	if len(i.ID) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(i.ID))
	names := make([]string, 0, len(i.ID))
	for _, id := range i.ID {
		name := strings.TrimSpace(id.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrimaryImage returns the thumbnail URL of the primary photo, falling back
// to the first photo. Ordering of Photos is stable (sorted by media ID), so
// this selection is deterministic across runs.
func (i *Item) PrimaryImage() string {
	if len(i.Photos) == 0 {
		return ""
	}
	for _, p := range i.Photos {
		if p.Primary {
			return p.ThumbnailURL
		}
	}
	return i.Photos[0].ThumbnailURL
}
