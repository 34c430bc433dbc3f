package types

import "testing"

func TestQuantityString(t *testing.T) {
	tests := []struct {
		q    Quantity
		want string
	}{
		{NewQuantityFromInt(5), "5.0000"},
		{NewQuantityFromInt(-5), "-5.0000"},
		{NewQuantityFromFloat64(2.5), "2.5000"},
		{Quantity(0), "0.0000"},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("Quantity(%d).String() = %s, want %s", tt.q, got, tt.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  Quantity
		ok    bool
	}{
		{"5", NewQuantityFromInt(5), true},
		{"-5", NewQuantityFromInt(-5), true},
		{"2.5", Quantity(25000), true},
		{"+1.25", Quantity(12500), true},
		{"0.00019", Quantity(1), true}, // truncated to 4 digits
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseQuantity(tt.input)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseQuantity(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseQuantity(%q) expected error", tt.input)
		}
	}
}

func TestQuantitySignHelpers(t *testing.T) {
	q := NewQuantityFromInt(-3)
	if !q.IsNegative() || q.IsPositive() || q.IsZero() {
		t.Error("sign predicates wrong for -3")
	}
	if q.Abs() != NewQuantityFromInt(3) {
		t.Error("Abs(-3) != 3")
	}
	if q.Neg() != NewQuantityFromInt(3) {
		t.Error("Neg(-3) != 3")
	}
}

func TestQuantityDecimal(t *testing.T) {
	q := Quantity(25000) // 2.5
	d := q.Decimal()
	if d.String() != "2.5" {
		t.Errorf("expected 2.5, got %s", d.String())
	}
}
