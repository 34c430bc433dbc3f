package costs

import (
	"context"

	"atelierdesk/internal/core/types"
)

// Repository defines the interface for monthly cost persistence.
type Repository interface {
	// Upsert inserts or replaces the cost row for its month key.
	Upsert(ctx context.Context, c *MonthlyCost) error

	// GetByMonth retrieves the cost row for a month.
	GetByMonth(ctx context.Context, month types.MonthKey) (*MonthlyCost, error)

	// ListRange retrieves cost rows for the given month keys.
	// Months without a row are simply absent from the result.
	ListRange(ctx context.Context, months []types.MonthKey) ([]*MonthlyCost, error)
}
