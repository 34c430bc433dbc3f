package stock

import (
	"context"
	"time"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// CreateMovement inserts a movement record.
	CreateMovement(ctx context.Context, m *Movement) error

	// History returns movement history for a product, newest first.
	History(ctx context.Context, productID id.ProductID, filter MovementFilter) ([]*Movement, error)

	// ApplyDelta atomically adds delta to the product's stock, clamping
	// the result at zero, and returns the new stock value. Fails with
	// NOT_FOUND if the product does not exist.
	ApplyDelta(ctx context.Context, productID id.ProductID, delta types.Quantity) (types.Quantity, error)

	// SumByProduct computes the signed sum of all movements for a product.
	// Used to recompute derived stock from the history.
	SumByProduct(ctx context.Context, productID id.ProductID) (types.Quantity, error)
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	Source   *Source
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}
