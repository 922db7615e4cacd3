// ABOUTME: Collection and Profile domain models loaded from per-user YAML config
// ABOUTME: Collection identifications/tags act as allow-lists over member item facets

package domain

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Collection is the per-user configuration of a named collection. The
// Identifications and Tags lists, when present, filter which id~/tag~ facets
// survive on member items in this collection's aggregate view; they never
// mutate the underlying canonical items.
type Collection struct {
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Latitude    *float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`
	Featured    bool     `yaml:"featured,omitempty" json:"featured,omitempty"`

	// Hide excludes the collection from the per-user roll-up index while
	// still aggregating it
	Hide bool `yaml:"hide,omitempty" json:"hide,omitempty"`

	Identifications []CollectionIdentification `yaml:"identifications,omitempty" json:"identifications,omitempty"`
	Tags            []string                   `yaml:"tags,omitempty" json:"tags,omitempty"`

	// ExtraItems grafts individual item paths (possibly from other users)
	// into the aggregate
	ExtraItems []string `yaml:"extra_items,omitempty" json:"extra_items,omitempty"`

	Members []string `yaml:"members,omitempty" json:"members,omitempty"`
	Admins  []string `yaml:"admins,omitempty" json:"admins,omitempty"`

	Display *CollectionDisplay `yaml:"display,omitempty" json:"display,omitempty"`
}

// CollectionIdentification is one allow-list entry. In YAML it is either a
// plain species name or a mapping of {name, tags}; the tags list contributes
// extra tag~ facets to every member item carrying the identification.
type CollectionIdentification struct {
	Name string   `yaml:"name" json:"name"`
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type collectionIdentificationAlias CollectionIdentification

// UnmarshalYAML accepts both the scalar and the mapping form.
func (c *CollectionIdentification) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Name = strings.TrimSpace(value.Value)
		return nil
	}
	var alias collectionIdentificationAlias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	*c = CollectionIdentification(alias)
	return nil
}

// MarshalYAML emits the scalar form when only the name is set.
func (c CollectionIdentification) MarshalYAML() (interface{}, error) {
	if len(c.Tags) == 0 {
		return c.Name, nil
	}
	return collectionIdentificationAlias(c), nil
}

// CollectionDisplay is presentation configuration passed through to the
// aggregate feed's _display block.
type CollectionDisplay struct {
	SortBy    string   `yaml:"sort_by,omitempty" json:"sort_by,omitempty"`
	SortOrder string   `yaml:"sort_order,omitempty" json:"sort_order,omitempty"`
	StartTags []string `yaml:"start_tags,omitempty" json:"start_tags,omitempty"`
}

// DefaultCollectionTitle derives a display title from a collection name,
// replacing underscores and upper-casing the first rune.
func DefaultCollectionTitle(name string) string {
	title := strings.ReplaceAll(name, "_", " ")
	if title == "" {
		return title
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

// Profile is the per-user profile.yaml.
type Profile struct {
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Bio    string `yaml:"bio,omitempty" json:"bio,omitempty"`
	Joined string `yaml:"joined,omitempty" json:"joined,omitempty"`
}
