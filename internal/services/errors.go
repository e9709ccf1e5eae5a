package services

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrNotFound is returned when a record does not exist or belongs to
// another user. The two cases are deliberately indistinguishable so
// record existence never leaks across ownership boundaries.
var ErrNotFound = errors.New("record not found")

// ValidationError carries per-field messages for a rejected payload.
// Operations that return it have had no side effect.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError with a single field message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// validateLink checks that link is a well-formed absolute http or https URL.
func validateLink(field, link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewValidationError(field, "must be a valid http or https URL")
	}
	return nil
}
