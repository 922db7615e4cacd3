// ABOUTME: SchemaValidator checks items and generated feeds against named schemas
// ABOUTME: Used at item-write time and at feed-page-1/geo write time

package interfaces

// Schema names understood by the validator.
const (
	SchemaItem       = "item"
	SchemaCollection = "collection"
	SchemaProfile    = "profile"
	SchemaFeed       = "feed"
	SchemaGeo        = "geo"
)

// SchemaValidator validates a value against a named schema. A failure
// returns an error satisfying errors.IsValidation carrying the first
// offending field; nil means the value conforms.
type SchemaValidator interface {
	Validate(value interface{}, schema string) error
}
