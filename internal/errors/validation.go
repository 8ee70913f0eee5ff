package errors

import (
	stdErrors "errors"
	"sort"
	"strings"
)

// ValidationError reports form input that failed field rules.
// Fields maps a field name to the message shown next to it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Field returns the message for a single field, or "" when the field is valid.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// NewValidationError creates a ValidationError from a field map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidationError reports whether err is a ValidationError (even when wrapped).
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return stdErrors.As(err, &valErr)
}
