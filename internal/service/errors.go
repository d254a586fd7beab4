package service

import "fmt"

// ValidationError reports bad or missing caller input. It is never retried
// and is surfaced verbatim; the field name lets the presentation layer point
// at the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
