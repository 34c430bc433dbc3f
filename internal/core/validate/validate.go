// Package validate provides generic string-shape validators.
// All functions are pure booleans with no entity coupling.
package validate

import (
	"regexp"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	uuidV4Pattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

	iso8601Pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword enforces the minimum password length.
func IsValidPassword(s string) bool {
	return len(s) >= 8
}

// IsValidUUID reports whether s is a well-formed UUID v4.
func IsValidUUID(s string) bool {
	return uuidV4Pattern.MatchString(s)
}

// IsValidISO8601 checks both shape and calendar validity of a timestamp.
//
// The regex alone accepts impossible dates like 2025-02-30; parsing and
// re-formatting must reproduce the leading 19 characters
// ("2006-01-02T15:04:05") for the string to be accepted.
func IsValidISO8601(s string) bool {
	if !iso8601Pattern.MatchString(s) {
		return false
	}

	layout := "2006-01-02T15:04:05"
	t, err := time.Parse(layout, s[:19])
	if err != nil {
		return false
	}
	return t.Format(layout) == s[:19]
}
