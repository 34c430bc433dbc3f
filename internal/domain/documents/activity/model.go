// Package activity provides the workshop activity journal.
//
// The journal is the single entry point for everything that happens in
// the workshop: pieces made, pieces sold, stock corrections, and
// miscellaneous income. Records are append-only.
package activity

import (
	"context"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

// Type is the closed set of journal record types.
type Type string

const (
	TypeCreation        Type = "CREATION"
	TypeSale            Type = "SALE"
	TypeStockCorrection Type = "STOCK_CORRECTION"
	TypeOther           Type = "OTHER"
)

// IsValidType fails closed on values outside the enum.
func IsValidType(t Type) bool {
	switch t {
	case TypeCreation, TypeSale, TypeStockCorrection, TypeOther:
		return true
	}
	return false
}

// Activity is a single journal record.
type Activity struct {
	entity.Document

	// Type of the record
	Type Type `db:"type" json:"type"`

	// ProductID is required for SALE and STOCK_CORRECTION
	ProductID *id.ProductID `db:"product_id" json:"productId,omitempty"`

	// Quantity is signed: sales carry negative quantities, creations
	// positive ones, corrections either sign.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Amount is the unsigned monetary magnitude of the record
	Amount types.Money `db:"amount" json:"amount"`

	// Note is free text
	Note *string `db:"note" json:"note,omitempty"`
}

// NewActivity creates a journal record for a date.
func NewActivity(date time.Time, activityType Type) *Activity {
	return &Activity{
		Document: entity.NewDocument(date),
		Type:     activityType,
	}
}

// IsValid reports the product-requirement rule: SALE and
// STOCK_CORRECTION records must reference a product, the other types
// are unconditionally fine.
func IsValid(a *Activity) bool {
	if a.Type == TypeSale || a.Type == TypeStockCorrection {
		return a.ProductID != nil && !id.IsNil(*a.ProductID)
	}
	return true
}

// IsNegativeForSale checks the sale sign convention. A convention
// checker, not a blocking rule.
func IsNegativeForSale(a *Activity) bool {
	return a.Type == TypeSale && a.Quantity.IsNegative()
}

// Validate implements entity.Validatable interface.
func (a *Activity) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if !IsValidType(a.Type) {
		return apperror.NewValidation("invalid activity type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}

	if !IsValid(a) {
		return apperror.NewValidation("product is required for this activity type").
			WithDetail("field", "productId").
			WithDetail("type", string(a.Type))
	}

	if a.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount").
			WithDetail("value", a.Amount.String())
	}

	switch a.Type {
	case TypeCreation:
		if !a.Quantity.IsPositive() {
			return apperror.NewValidation("creation quantity must be positive").
				WithDetail("field", "quantity").
				WithDetail("value", a.Quantity.String())
		}
	case TypeSale:
		if !a.Quantity.IsNegative() {
			return apperror.NewValidation("sale quantity must be negative").
				WithDetail("field", "quantity").
				WithDetail("value", a.Quantity.String())
		}
	case TypeStockCorrection:
		if a.Quantity.IsZero() {
			return apperror.NewValidation("stock correction quantity cannot be zero").
				WithDetail("field", "quantity")
		}
	}

	return nil
}
