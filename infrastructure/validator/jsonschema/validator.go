// ABOUTME: JSON Schema validator with schemas embedded at build time
// ABOUTME: Validates items, collections, profiles and generated feed artifacts

package jsonschema

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	coreerrors "natureshare-pipeline/core/errors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator implements the SchemaValidator interface with compiled schemas
// loaded once at construction.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	names := []string{"item", "collection", "profile", "feed", "geo"}
	schemas := make(map[string]*gojsonschema.Schema, len(names))

	for _, name := range names {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		schemas[name] = schema
	}

	return &Validator{schemas: schemas}, nil
}

// Validate checks value against the named schema. The value round-trips
// through JSON so YAML-loaded structs validate the same as generated ones.
func (v *Validator) Validate(value interface{}, schema string) error {
	compiled, ok := v.schemas[schema]
	if !ok {
		return fmt.Errorf("unknown schema: %s", schema)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return &coreerrors.ValidationError{
			Schema:  schema,
			Message: fmt.Sprintf("value not serializable: %v", err),
		}
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &coreerrors.ValidationError{
			Schema:  schema,
			Message: err.Error(),
		}
	}

	if !result.Valid() {
		first := result.Errors()[0]
		return &coreerrors.ValidationError{
			Schema:  schema,
			Field:   first.Field(),
			Message: first.Description(),
		}
	}
	return nil
}
