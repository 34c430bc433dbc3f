package validate

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	invalid := []string{"", "user", "user@", "@example.com", "a b@c.de", "user@domain"}

	for _, s := range valid {
		if !IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = true, want false", s)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	if IsValidPassword("short7!") {
		t.Error("7 chars must fail")
	}
	if !IsValidPassword("exactly8") {
		t.Error("8 chars must pass")
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("9b2b54c8-6d3e-4a8f-8f3b-2e1d9a7c5b44") {
		t.Error("well-formed v4 must pass")
	}
	// v7 has version nibble 7, not 4
	if IsValidUUID("01926c9f-88a7-7def-8001-0242ac120002") {
		t.Error("non-v4 version nibble must fail")
	}
	if IsValidUUID("not-a-uuid") {
		t.Error("garbage must fail")
	}
}

func TestIsValidISO8601(t *testing.T) {
	valid := []string{
		"2025-01-15T10:30:00",
		"2025-01-15T10:30:00Z",
		"2025-01-15T10:30:00.123Z",
		"2025-01-15T10:30:00+02:00",
		"2024-02-29T00:00:00Z", // leap day
	}
	invalid := []string{
		"",
		"2025-01-15",            // date only
		"2025-02-30T00:00:00Z",  // impossible calendar date
		"2025-13-01T00:00:00Z",  // month out of range
		"2025-01-15T25:00:00Z",  // hour out of range
		"2023-02-29T00:00:00Z",  // not a leap year
		"2025/01/15T10:30:00Z",  // wrong separators
		"15-01-2025T10:30:00Z",  // wrong order
	}

	for _, s := range valid {
		if !IsValidISO8601(s) {
			t.Errorf("IsValidISO8601(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidISO8601(s) {
			t.Errorf("IsValidISO8601(%q) = true, want false", s)
		}
	}
}
