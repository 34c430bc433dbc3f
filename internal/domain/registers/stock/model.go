// Package stock provides the stock movement register.
//
// Movements are append-only records of stock entering or leaving the
// workshop. Current stock on a product is derived from the movement
// history and kept in sync through the atomic ApplyDelta operation.
package stock

import (
	"context"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

// Source identifies what produced a stock movement.
type Source string

const (
	SourceCreation            Source = "CREATION"
	SourceSale                Source = "SALE"
	SourceInventoryAdjustment Source = "INVENTORY_ADJUSTMENT"
)

// Movement is a single signed stock change for a product.
type Movement struct {
	entity.BaseEntity

	// ProductID is always required
	ProductID id.ProductID `db:"product_id" json:"productId"`

	// Quantity is signed and never zero
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Source of the movement
	Source Source `db:"source" json:"source"`

	// ActivityID links back to the journal record that produced the movement
	ActivityID *id.ActivityID `db:"activity_id" json:"activityId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovement creates a movement record.
func NewMovement(productID id.ProductID, quantity types.Quantity, source Source) *Movement {
	return &Movement{
		BaseEntity: entity.NewBaseEntity(),
		ProductID:  productID,
		Quantity:   quantity,
		Source:     source,
		CreatedAt:  time.Now().UTC(),
	}
}

// IsValidQuantityForSource checks the sign convention per source.
// CREATION adds stock, SALE removes it, INVENTORY_ADJUSTMENT goes either
// way but never zero. Unknown sources fail closed.
func IsValidQuantityForSource(q types.Quantity, source Source) bool {
	switch source {
	case SourceCreation:
		return q.IsPositive()
	case SourceSale:
		return q.IsNegative()
	case SourceInventoryAdjustment:
		return !q.IsZero()
	default:
		return false
	}
}

// IsValidMovement reports whether the movement satisfies its invariants.
func IsValidMovement(m *Movement) bool {
	if m == nil || id.IsNil(m.ProductID) {
		return false
	}
	return IsValidQuantityForSource(m.Quantity, m.Source)
}

// Validate implements entity.Validatable interface.
func (m *Movement) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	switch m.Source {
	case SourceCreation, SourceSale, SourceInventoryAdjustment:
	default:
		return apperror.NewUnknownSource(string(m.Source))
	}

	if !IsValidQuantityForSource(m.Quantity, m.Source) {
		return apperror.NewValidation("quantity sign does not match movement source").
			WithDetail("field", "quantity").
			WithDetail("value", m.Quantity.String()).
			WithDetail("source", string(m.Source))
	}

	return nil
}
