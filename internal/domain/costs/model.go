// Package costs provides monthly fixed cost tracking.
// One row per calendar month, upserted by month key.
package costs

import (
	"context"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/types"
)

// MonthlyCost holds the workshop's fixed costs for one month.
type MonthlyCost struct {
	entity.BaseEntity

	// Month is the unique "YYYY-MM" key
	Month types.MonthKey `db:"month" json:"month"`

	ShippingCost  types.Money `db:"shipping_cost" json:"shippingCost"`
	MarketingCost types.Money `db:"marketing_cost" json:"marketingCost"`
	OverheadCost  types.Money `db:"overhead_cost" json:"overheadCost"`
}

// NewMonthlyCost creates a cost row for a month.
func NewMonthlyCost(month types.MonthKey) *MonthlyCost {
	return &MonthlyCost{
		BaseEntity:    entity.NewBaseEntity(),
		Month:         month,
		ShippingCost:  types.Zero(),
		MarketingCost: types.Zero(),
		OverheadCost:  types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (c *MonthlyCost) Validate(ctx context.Context) error {
	if !c.Month.IsValid() {
		return apperror.NewValidation("month must be a valid YYYY-MM key").
			WithDetail("field", "month").
			WithDetail("value", string(c.Month))
	}

	if c.ShippingCost.IsNegative() {
		return apperror.NewValidation("shipping cost cannot be negative").
			WithDetail("field", "shippingCost").
			WithDetail("value", c.ShippingCost.String())
	}
	if c.MarketingCost.IsNegative() {
		return apperror.NewValidation("marketing cost cannot be negative").
			WithDetail("field", "marketingCost").
			WithDetail("value", c.MarketingCost.String())
	}
	if c.OverheadCost.IsNegative() {
		return apperror.NewValidation("overhead cost cannot be negative").
			WithDetail("field", "overheadCost").
			WithDetail("value", c.OverheadCost.String())
	}

	return nil
}

// Total returns the sum of all three cost positions.
func (c *MonthlyCost) Total() types.Money {
	return c.ShippingCost.Add(c.MarketingCost).Add(c.OverheadCost)
}
