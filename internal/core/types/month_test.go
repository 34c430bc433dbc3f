package types

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthKeysInRange(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []MonthKey
	}{
		{
			// Regression: starting on the 31st must not skip February.
			name:  "month-end start does not skip february",
			start: date(2025, time.January, 31),
			end:   date(2025, time.March, 15),
			want:  []MonthKey{"2025-01", "2025-02", "2025-03"},
		},
		{
			name:  "single month",
			start: date(2025, time.June, 1),
			end:   date(2025, time.June, 30),
			want:  []MonthKey{"2025-06"},
		},
		{
			name:  "year boundary",
			start: date(2024, time.November, 15),
			end:   date(2025, time.February, 1),
			want:  []MonthKey{"2024-11", "2024-12", "2025-01", "2025-02"},
		},
		{
			name:  "end before start",
			start: date(2025, time.March, 1),
			end:   date(2025, time.January, 1),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthKeysInRange(tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestParseMonthKey(t *testing.T) {
	k, err := ParseMonthKey("2025-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != "2025-07" {
		t.Errorf("expected 2025-07, got %s", k)
	}

	for _, bad := range []string{"", "2025", "2025-13", "07-2025", "2025-7"} {
		if _, err := ParseMonthKey(bad); err == nil {
			t.Errorf("ParseMonthKey(%q) expected error", bad)
		}
	}
}

func TestMonthKeyOf(t *testing.T) {
	if k := MonthKeyOf(date(2025, time.December, 31)); k != "2025-12" {
		t.Errorf("expected 2025-12, got %s", k)
	}
}
