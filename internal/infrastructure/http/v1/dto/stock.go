package dto

import (
	"time"

	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/registers/stock"
)

// MovementResponse is the API representation of a stock movement.
type MovementResponse struct {
	ID         string         `json:"id"`
	ProductID  string         `json:"productId"`
	Quantity   types.Quantity `json:"quantity"`
	Source     string         `json:"source"`
	ActivityID *string        `json:"activityId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// FromMovement creates MovementResponse from a movement.
func FromMovement(m *stock.Movement) MovementResponse {
	resp := MovementResponse{
		ID:        m.ID.String(),
		ProductID: m.ProductID.String(),
		Quantity:  m.Quantity,
		Source:    string(m.Source),
		CreatedAt: m.CreatedAt,
	}
	if m.ActivityID != nil {
		s := m.ActivityID.String()
		resp.ActivityID = &s
	}
	return resp
}

// MovementListResponse wraps movement history.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

// DerivedStockResponse reports stock recomputed from the history next
// to the stored value.
type DerivedStockResponse struct {
	ProductID    string         `json:"productId"`
	DerivedStock types.Quantity `json:"derivedStock"`
	StoredStock  types.Quantity `json:"storedStock"`
	InSync       bool           `json:"inSync"`
}
