package numparse

import (
	"math"
	"testing"

	"atelierdesk/internal/core/apperror"
)

func TestParseValidNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     float64
		wantCode string
	}{
		{name: "decimal", input: "10.50", want: 10.5},
		{name: "integer", input: "42", want: 42},
		{name: "negative", input: "-3.25", want: -3.25},
		{name: "zero", input: "0", want: 0},
		{name: "whitespace tolerated", input: "  7.5  ", want: 7.5},
		{name: "scientific notation", input: "1.5e3", want: 1500},
		{name: "infinity literal rejected", input: "Infinity", wantCode: apperror.CodeNonFinite},
		{name: "negative infinity rejected", input: "-Infinity", wantCode: apperror.CodeNonFinite},
		{name: "nan literal rejected", input: "NaN", wantCode: apperror.CodeInvalidNumber},
		{name: "non numeric", input: "abc", wantCode: apperror.CodeParseError},
		{name: "empty string", input: "", wantCode: apperror.CodeParseError},
		{name: "blank string", input: "   ", wantCode: apperror.CodeParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValidNumber(tt.input, "x")
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("expected error code %s, got value %v", tt.wantCode, got)
				}
				if !apperror.IsCode(err, tt.wantCode) {
					t.Errorf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseValidNumber_ErrorCarriesFieldAndValue(t *testing.T) {
	_, err := ParseValidNumber("abc", "quantity")
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Details["field"] != "quantity" {
		t.Errorf("expected field detail 'quantity', got %v", appErr.Details["field"])
	}
	if appErr.Details["value"] != "abc" {
		t.Errorf("expected value detail 'abc', got %v", appErr.Details["value"])
	}
}

func TestValidateNumber(t *testing.T) {
	if err := ValidateNumber(0, "x"); err != nil {
		t.Errorf("zero must be valid: %v", err)
	}
	if err := ValidateNumber(-10, "x"); err != nil {
		t.Errorf("negative must be valid: %v", err)
	}
	if err := ValidateNumber(math.NaN(), "x"); !apperror.IsCode(err, apperror.CodeInvalidNumber) {
		t.Errorf("NaN must fail with INVALID_NUMBER, got %v", err)
	}
	if err := ValidateNumber(math.Inf(1), "x"); !apperror.IsCode(err, apperror.CodeNonFinite) {
		t.Errorf("+Inf must fail with NON_FINITE_NUMBER, got %v", err)
	}
	if err := ValidateNumber(math.Inf(-1), "x"); !apperror.IsCode(err, apperror.CodeNonFinite) {
		t.Errorf("-Inf must fail with NON_FINITE_NUMBER, got %v", err)
	}
}

func TestIsValidNumber(t *testing.T) {
	if !IsValidNumber(0) || !IsValidNumber(-5.5) {
		t.Error("zero and negatives are valid numbers")
	}
	if IsValidNumber(math.NaN()) || IsValidNumber(math.Inf(1)) {
		t.Error("NaN and Inf are not valid numbers")
	}
}

func TestPositiveNumberStrings(t *testing.T) {
	if !IsValidPositiveNumberString("0.01") {
		t.Error("0.01 is a valid positive number string")
	}
	if IsValidPositiveNumberString("0") {
		t.Error("zero is not strictly positive")
	}
	if IsValidPositiveNumberString("-1") {
		t.Error("negative is not positive")
	}
	if IsValidPositiveNumberString("Infinity") {
		t.Error("Infinity is rejected even though it parses")
	}

	blank := "   "
	value := "2.5"
	bad := "abc"
	if !IsValidOptionalPositiveNumberString(nil) {
		t.Error("nil is absent, therefore valid")
	}
	if !IsValidOptionalPositiveNumberString(&blank) {
		t.Error("blank is absent, therefore valid")
	}
	if !IsValidOptionalPositiveNumberString(&value) {
		t.Error("2.5 is a valid positive number string")
	}
	if IsValidOptionalPositiveNumberString(&bad) {
		t.Error("abc is present and invalid")
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"150", 150, true},
		{" 42 ", 42, true},
		{"150abc", 0, false},
		{"2.5", 0, false},
		{"0", 0, false},
		{"-10", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParsePositiveInt(tt.input, "weight")
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParsePositiveInt(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParsePositiveInt(%q) expected error", tt.input)
		}
	}
}
