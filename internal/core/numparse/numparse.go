// Package numparse provides numeric parsing and validation for form input.
//
// Parsing is deliberately two-step: parse permissively first (whitespace,
// scientific notation, even the literals "Infinity" and "NaN" all parse),
// then validate finiteness on the parsed value. A stricter regex up front
// would risk rejecting legitimate scientific notation.
package numparse

import (
	"math"
	"strconv"
	"strings"

	"atelierdesk/internal/core/apperror"
)

// ValidateNumber checks a numeric value for NaN and infinities.
// Zero and negative values are valid here; sign constraints belong to callers.
func ValidateNumber(n float64, field string) error {
	if math.IsNaN(n) {
		return apperror.NewInvalidNumber(field, "NaN")
	}
	if math.IsInf(n, 0) {
		return apperror.NewNonFinite(field, n)
	}
	return nil
}

// IsValidNumber is the boolean form of ValidateNumber.
func IsValidNumber(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// ParseValidNumber parses a string into a finite number.
//
// Leading/trailing whitespace is tolerated and scientific notation is
// accepted. "Infinity" and "NaN" parse at the numeric level but are
// rejected by the post-parse validation. Empty and non-numeric strings
// fail with a parse error carrying the field name and raw value.
func ParseValidNumber(raw, field string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, apperror.NewParseError(field, raw)
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperror.NewParseError(field, raw).WithCause(err)
	}

	if err := ValidateNumber(n, field); err != nil {
		return 0, err
	}
	return n, nil
}

// IsValidNumberString reports whether s parses to a finite number.
func IsValidNumberString(s string) bool {
	_, err := ParseValidNumber(s, "value")
	return err == nil
}

// IsValidPositiveNumberString reports whether s parses to a finite number
// strictly greater than zero.
func IsValidPositiveNumberString(s string) bool {
	n, err := ParseValidNumber(s, "value")
	return err == nil && n > 0
}

// IsValidOptionalPositiveNumberString treats a nil or blank string as
// absent (valid); otherwise the value must be a valid positive number
// string.
func IsValidOptionalPositiveNumberString(s *string) bool {
	if s == nil || strings.TrimSpace(*s) == "" {
		return true
	}
	return IsValidPositiveNumberString(*s)
}

// ParsePositiveInt parses a string that must be a positive integer with
// no fractional part and no trailing garbage ("150abc" and "2.5" both
// fail). Used for weight-in-grams style fields.
func ParsePositiveInt(raw, field string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, apperror.NewParseError(field, raw)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperror.NewValidation(field+" is invalid").
			WithDetail("field", field).
			WithDetail("value", raw).
			WithCause(err)
	}
	if n <= 0 {
		return 0, apperror.NewValidation(field + " must be positive").
			WithDetail("field", field).
			WithDetail("value", raw)
	}
	return n, nil
}
