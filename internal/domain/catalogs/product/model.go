// Package product provides the product catalog: finished goods with
// pricing, stock on hand, and their model/colorway references.
package product

import (
	"context"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

// Representation tells which product shape is populated.
//
// During the catalog migration a product carries either references to a
// model and colorway, or the older free-text name/category/coloris
// fields. Exactly one shape must be present.
type Representation string

const (
	ByReference Representation = "reference"
	Legacy      Representation = "legacy"
	// Unrepresented means neither or both shapes are populated.
	Unrepresented Representation = "invalid"
)

// Product is a finished good tracked by the workshop.
type Product struct {
	entity.Catalog

	// Reference shape
	ModelID   *id.ModelID   `db:"model_id" json:"modelId,omitempty"`
	ColorisID *id.ColorisID `db:"coloris_id" json:"colorisId,omitempty"`

	// Legacy shape (Name on the embedded Catalog holds the legacy name)
	LegacyType    *string `db:"legacy_type" json:"legacyType,omitempty"`
	LegacyColoris *string `db:"legacy_coloris" json:"legacyColoris,omitempty"`

	// UnitCost is the material cost per unit, strictly positive
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// SalePrice per unit, strictly positive
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// Stock on hand, never negative
	Stock types.Quantity `db:"stock" json:"stock"`

	// WeightGrams is optional, positive integer when set
	WeightGrams *int64 `db:"weight_grams" json:"weightGrams,omitempty"`
}

// NewProduct creates a reference-shaped product.
func NewProduct(code, name string, modelID id.ModelID, colorisID id.ColorisID) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		ModelID:   &modelID,
		ColorisID: &colorisID,
	}
}

// NewLegacyProduct creates a legacy-shaped product from free-text fields.
func NewLegacyProduct(code, name, legacyType, legacyColoris string) *Product {
	return &Product{
		Catalog:       entity.NewCatalog(code, name),
		LegacyType:    &legacyType,
		LegacyColoris: &legacyColoris,
	}
}

// Representation reports which shape the product carries.
func (p *Product) Representation() Representation {
	hasRef := p.ModelID != nil && p.ColorisID != nil
	hasLegacy := p.LegacyType != nil && p.LegacyColoris != nil

	switch {
	case hasRef && !hasLegacy:
		return ByReference
	case hasLegacy && !hasRef:
		return Legacy
	default:
		return Unrepresented
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Representation() == Unrepresented {
		return apperror.NewValidation("product must carry exactly one representation").
			WithDetail("field", "modelId")
	}

	if !p.UnitCost.IsPositive() {
		return apperror.NewValidation("unit cost must be positive").
			WithDetail("field", "unitCost").
			WithDetail("value", p.UnitCost.String())
	}

	if !p.SalePrice.IsPositive() {
		return apperror.NewValidation("sale price must be positive").
			WithDetail("field", "salePrice").
			WithDetail("value", p.SalePrice.String())
	}

	if p.Stock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock").
			WithDetail("value", p.Stock.String())
	}

	if p.WeightGrams != nil && *p.WeightGrams <= 0 {
		return apperror.NewValidation("weight must be positive").
			WithDetail("field", "weight").
			WithDetail("value", *p.WeightGrams)
	}

	return nil
}

// IsValid reports the pricing and stock invariant:
// unit cost and sale price strictly positive, stock never negative.
func IsValid(p *Product) bool {
	return p.UnitCost.IsPositive() && p.SalePrice.IsPositive() && !p.Stock.IsNegative()
}

// Margin returns sale price minus unit cost per unit.
func (p *Product) Margin() types.Money {
	return p.SalePrice.Sub(p.UnitCost)
}
