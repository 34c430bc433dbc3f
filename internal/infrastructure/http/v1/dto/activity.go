package dto

import (
	"time"

	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/documents/activity"
)

// ActivityResponse is the API representation of a journal record.
type ActivityResponse struct {
	BaseResponse
	Number    string         `json:"number"`
	Date      time.Time      `json:"date"`
	Type      string         `json:"type"`
	ProductID *string        `json:"productId,omitempty"`
	Quantity  types.Quantity `json:"quantity"`
	Amount    types.Money    `json:"amount"`
	Note      *string        `json:"note,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	CreatedBy string         `json:"createdBy,omitempty"`
}

// FromActivity creates ActivityResponse from a journal record.
func FromActivity(a *activity.Activity) ActivityResponse {
	resp := ActivityResponse{
		BaseResponse: FromBaseEntity(a.BaseEntity),
		Number:       a.Number,
		Date:         a.Date,
		Type:         string(a.Type),
		Quantity:     a.Quantity,
		Amount:       a.Amount,
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
	if a.ProductID != nil {
		s := a.ProductID.String()
		resp.ProductID = &s
	}
	return resp
}

// ActivityFormRequest is the raw submitted journal form. All numeric
// fields arrive as strings; validation dispatches on Type.
type ActivityFormRequest struct {
	Date            string `json:"date"`
	Type            string `json:"type"`
	ProductID       string `json:"productId"`
	ProductType     string `json:"productType"`
	ModelID         string `json:"modelId"`
	ColorisID       string `json:"colorisId"`
	Quantity        string `json:"quantity"`
	Amount          string `json:"amount"`
	AddToStock      string `json:"addToStock"`
	ReduceFromStock string `json:"reduceFromStock"`
	Note            string `json:"note"`
}

// ToForm converts to the domain form.
func (r ActivityFormRequest) ToForm() *activity.Form {
	return &activity.Form{
		Date:            r.Date,
		Type:            r.Type,
		ProductID:       r.ProductID,
		ProductType:     r.ProductType,
		ModelID:         r.ModelID,
		ColorisID:       r.ColorisID,
		Quantity:        r.Quantity,
		Amount:          r.Amount,
		AddToStock:      r.AddToStock,
		ReduceFromStock: r.ReduceFromStock,
		Note:            r.Note,
	}
}
