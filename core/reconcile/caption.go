// ABOUTME: Caption parsing extracts a user-authored partial item from a description
// ABOUTME: Captions embed a YAML document between --- markers; anything unparseable is ignored

package reconcile

import (
	"strings"

	"gopkg.in/yaml.v3"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/interfaces"
)

// ParseCaption extracts the partial item embedded in a caption or
// description. The convention is a YAML document between --- markers:
//
//	--- #natureshare.org
//	id:
//	  - Vulpes vulpes
//	tags: [night]
//	---
//
// A caption without a parseable, schema-valid document yields nil — a bad
// caption must never block the rest of an import batch.
func (s *Service) ParseCaption(text string) *domain.Item {
	if text == "" {
		return nil
	}

	parts := strings.SplitN(text, "---", 3)
	if len(parts) < 2 {
		return nil
	}

	doc := strings.TrimSpace(parts[1])
	if doc == "" {
		return nil
	}

	var item domain.Item
	if err := yaml.Unmarshal([]byte(doc), &item); err != nil {
		return nil
	}

	item.Clean()

	if s.deps.Validator != nil {
		if err := s.deps.Validator.Validate(&item, interfaces.SchemaItem); err != nil {
			return nil
		}
	}

	return &item
}
