package numerator

import (
	"context"
	"time"
)

// Generator generates sequential journal numbers.
// Domain services depend on this contract; Service is the pgx-backed
// implementation.
type Generator interface {
	// GetNextNumber generates the next journal number.
	// Pattern: PREFIX-YEAR-XXXXX (e.g., ACT-2025-00001)
	GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error)

	// SetNextNumber sets the next number value (for migration purposes).
	SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error
}

var _ Generator = (*Service)(nil)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	GetNextNumberFunc func(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error)
	SetNextNumberFunc func(ctx context.Context, cfg Config, period time.Time, value int64) error
}

// GetNextNumber implements Generator.
func (m *MockGenerator) GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error) {
	if m.GetNextNumberFunc != nil {
		return m.GetNextNumberFunc(ctx, cfg, opts, period)
	}
	return "MOCK-2025-00001", nil
}

// SetNextNumber implements Generator.
func (m *MockGenerator) SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error {
	if m.SetNextNumberFunc != nil {
		return m.SetNextNumberFunc(ctx, cfg, period, value)
	}
	return nil
}

var _ Generator = (*MockGenerator)(nil)
