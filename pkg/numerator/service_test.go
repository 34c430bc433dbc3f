package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT: every call adds the
// increment (args[1] if int64, otherwise 1) and returns the new value.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	calls        int
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.calls++

	return &mockRow{val: m.currentValue}
}

var testPeriod = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ACT")

	num, err := svc.GetNextNumber(ctx, cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ACT-2025-00001" {
		t.Errorf("expected ACT-2025-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ACT-2025-00002" {
		t.Errorf("expected ACT-2025-00002, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ACT")

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}

	// First call allocates range 1..10 in one DB round trip.
	num, err := svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ACT-2025-00001" {
		t.Errorf("expected ACT-2025-00001, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to be 10, got %d", q.currentValue)
	}

	// Second call is served from memory without touching DB.
	num, err = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ACT-2025-00002" {
		t.Errorf("expected ACT-2025-00002, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.currentValue)
	}

	// Exhaust the range, the 11th call reserves the next one.
	for i := 0; i < 8; i++ {
		_, _ = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	}
	num, err = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ACT-2025-00011" {
		t.Errorf("expected ACT-2025-00011, got %s", num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value to be 20, got %d", q.currentValue)
	}
}

func TestBuildKey_ResetPeriods(t *testing.T) {
	svc := New(&mockQuerier{})

	cases := []struct {
		reset string
		want  string
	}{
		{"year", "ACT_2025"},
		{"month", "ACT_2025_03"},
		{"never", "ACT"},
	}
	for _, tc := range cases {
		cfg := Config{Prefix: "ACT", ResetPeriod: tc.reset}
		if got := svc.buildKey(cfg, testPeriod); got != tc.want {
			t.Errorf("reset %q: expected key %q, got %q", tc.reset, tc.want, got)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if got := ParseNumber("ACT-2025-00042"); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := ParseNumber("ACT-00007"); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := ParseNumber("garbage"); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}
