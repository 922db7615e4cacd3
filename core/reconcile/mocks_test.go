// ABOUTME: Mock implementations for testing the reconciler
// ABOUTME: Provides a recording schema validator

package reconcile

import (
	"natureshare-pipeline/core/errors"
)

// mockValidator records validations and optionally fails a named schema.
type mockValidator struct {
	calls      []string
	failSchema string
}

func (m *mockValidator) Validate(value interface{}, schema string) error {
	m.calls = append(m.calls, schema)
	if schema == m.failSchema {
		return &errors.ValidationError{Schema: schema, Message: "forced failure"}
	}
	return nil
}
