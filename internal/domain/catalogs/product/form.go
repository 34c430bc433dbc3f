package product

import (
	"strings"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/numparse"
	"atelierdesk/internal/core/types"
)

// Form is the submitted product payload. Numeric fields arrive as
// strings and go through parse-then-validate before any entity is built.
type Form struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ModelID   string `json:"modelId"`
	ColorisID string `json:"colorisId"`
	UnitCost  string `json:"unitCost"`
	SalePrice string `json:"salePrice"`
	Stock     string `json:"stock"`
	Weight    string `json:"weight"`
}

// Validate checks structural rules and returns the first violation.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !IsValidCategory(Category(f.Type)) {
		return apperror.NewValidation("invalid product category").
			WithDetail("field", "type").
			WithDetail("value", f.Type)
	}

	if strings.TrimSpace(f.ModelID) == "" {
		return apperror.NewValidation("model is required").
			WithDetail("field", "modelId")
	}
	if strings.TrimSpace(f.ColorisID) == "" {
		return apperror.NewValidation("coloris is required").
			WithDetail("field", "colorisId")
	}

	unitCost, err := numparse.ParseValidNumber(f.UnitCost, "unitCost")
	if err != nil {
		return err
	}
	if unitCost <= 0 {
		return apperror.NewValidation("unit cost must be positive").
			WithDetail("field", "unitCost").
			WithDetail("value", f.UnitCost)
	}

	salePrice, err := numparse.ParseValidNumber(f.SalePrice, "salePrice")
	if err != nil {
		return err
	}
	if salePrice <= 0 {
		return apperror.NewValidation("sale price must be positive").
			WithDetail("field", "salePrice").
			WithDetail("value", f.SalePrice)
	}

	stock, err := numparse.ParseValidNumber(f.Stock, "stock")
	if err != nil {
		return err
	}
	if stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock").
			WithDetail("value", f.Stock)
	}

	// Weight is optional. A blank string is treated as absent; anything
	// else must be a positive integer, so "2.5" and "150abc" both fail.
	if strings.TrimSpace(f.Weight) != "" {
		if _, err := numparse.ParsePositiveInt(f.Weight, "weight"); err != nil {
			return err
		}
	}

	return nil
}

// ToProduct builds a reference-shaped Product from a validated form.
// Call Validate first; parse errors here indicate a skipped validation.
func (f *Form) ToProduct() (*Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	modelID, err := id.Parse(strings.TrimSpace(f.ModelID))
	if err != nil {
		return nil, apperror.NewValidation("model id is malformed").
			WithDetail("field", "modelId").
			WithDetail("value", f.ModelID).
			WithCause(err)
	}
	colorisID, err := id.Parse(strings.TrimSpace(f.ColorisID))
	if err != nil {
		return nil, apperror.NewValidation("coloris id is malformed").
			WithDetail("field", "colorisId").
			WithDetail("value", f.ColorisID).
			WithCause(err)
	}

	unitCost, err := types.NewMoneyFromString(strings.TrimSpace(f.UnitCost))
	if err != nil {
		return nil, apperror.NewParseError("unitCost", f.UnitCost).WithCause(err)
	}
	salePrice, err := types.NewMoneyFromString(strings.TrimSpace(f.SalePrice))
	if err != nil {
		return nil, apperror.NewParseError("salePrice", f.SalePrice).WithCause(err)
	}
	stock, err := types.ParseQuantity(f.Stock)
	if err != nil {
		return nil, apperror.NewParseError("stock", f.Stock).WithCause(err)
	}

	p := NewProduct("", strings.TrimSpace(f.Name), modelID, colorisID)
	p.UnitCost = unitCost
	p.SalePrice = salePrice
	p.Stock = stock

	if strings.TrimSpace(f.Weight) != "" {
		grams, err := numparse.ParsePositiveInt(f.Weight, "weight")
		if err != nil {
			return nil, err
		}
		p.WeightGrams = &grams
	}

	return p, nil
}
