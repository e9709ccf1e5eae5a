// Package password provides an explicit password strength policy,
// evaluated locally instead of through a global validator registry.
package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// commonPasswords are rejected regardless of length. Matched
// case-insensitively against the lowercased candidate.
var commonPasswords = []string{
	"password", "password1", "password123", "12345678", "123456789",
	"1234567890", "qwerty123", "qwertyuiop", "letmein1", "iloveyou",
	"admin123", "welcome1", "sunshine", "princess", "football",
	"baseball", "superman", "trustno1", "changeme", "passw0rd",
}

// Policy enumerates the rules a password must satisfy.
type Policy struct {
	MinLength int
	MaxLength int
	// RejectCommon refuses passwords from the common-password list.
	RejectCommon bool
	// RejectNumeric refuses passwords made up entirely of digits.
	RejectNumeric bool
}

// DefaultPolicy returns the policy applied to account registration and
// password changes: 8-128 characters, no common passwords, no
// all-numeric passwords.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:     8,
		MaxLength:     128,
		RejectCommon:  true,
		RejectNumeric: true,
	}
}

// Validate checks a candidate password against every rule and returns
// the first violation.
func (p Policy) Validate(candidate string) error {
	if len(candidate) < p.MinLength {
		return fmt.Errorf("must be at least %d characters", p.MinLength)
	}
	if p.MaxLength > 0 && len(candidate) > p.MaxLength {
		return fmt.Errorf("must be at most %d characters", p.MaxLength)
	}
	if p.RejectCommon {
		lowered := strings.ToLower(candidate)
		for _, common := range commonPasswords {
			if lowered == common {
				return errors.New("is too common")
			}
		}
	}
	if p.RejectNumeric && allNumeric(candidate) {
		return errors.New("must not be entirely numeric")
	}
	return nil
}

func allNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
