package dto

import (
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/costs"
)

// MonthlyCostResponse is the API representation of a monthly cost row.
type MonthlyCostResponse struct {
	ID            string      `json:"id"`
	Month         string      `json:"month"`
	ShippingCost  types.Money `json:"shippingCost"`
	MarketingCost types.Money `json:"marketingCost"`
	OverheadCost  types.Money `json:"overheadCost"`
	Total         types.Money `json:"total"`
	Version       int         `json:"version"`
}

// FromMonthlyCost creates MonthlyCostResponse from a cost row.
func FromMonthlyCost(c *costs.MonthlyCost) MonthlyCostResponse {
	return MonthlyCostResponse{
		ID:            c.ID.String(),
		Month:         string(c.Month),
		ShippingCost:  c.ShippingCost,
		MarketingCost: c.MarketingCost,
		OverheadCost:  c.OverheadCost,
		Total:         c.Total(),
		Version:       c.Version,
	}
}

// UpsertMonthlyCostRequest stores the cost row for a month. The month
// key is "YYYY-MM"; absent cost positions default to zero.
type UpsertMonthlyCostRequest struct {
	Month         string      `json:"month" binding:"required"`
	ShippingCost  types.Money `json:"shippingCost"`
	MarketingCost types.Money `json:"marketingCost"`
	OverheadCost  types.Money `json:"overheadCost"`
}

// ToMonthlyCost maps the request to a domain cost row.
func (r UpsertMonthlyCostRequest) ToMonthlyCost() *costs.MonthlyCost {
	c := costs.NewMonthlyCost(types.MonthKey(r.Month))
	c.ShippingCost = r.ShippingCost
	c.MarketingCost = r.MarketingCost
	c.OverheadCost = r.OverheadCost
	return c
}

// MonthlyCostListResponse wraps cost rows for a range of months.
type MonthlyCostListResponse struct {
	Items []MonthlyCostResponse `json:"items"`
}
