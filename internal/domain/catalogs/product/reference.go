package product

import (
	"context"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryBag       Category = "bag"
	CategoryWallet    Category = "wallet"
	CategoryPouch     Category = "pouch"
	CategoryBelt      Category = "belt"
	CategoryAccessory Category = "accessory"
)

// IsValidCategory fails closed on values outside the enum.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryBag, CategoryWallet, CategoryPouch, CategoryBelt, CategoryAccessory:
		return true
	}
	return false
}

// Model is a product model within a category.
// (type, name) pairs are unique, enforced by the service.
type Model struct {
	entity.Catalog

	// Type is the product category
	Type Category `db:"type" json:"type"`
}

// NewModel creates a product model.
func NewModel(code, name string, category Category) *Model {
	return &Model{
		Catalog: entity.NewCatalog(code, name),
		Type:    category,
	}
}

// Validate implements entity.Validatable interface.
func (m *Model) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !IsValidCategory(m.Type) {
		return apperror.NewValidation("invalid product category").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}

	return nil
}

// Coloris is a colorway of a product model. Name on the embedded Catalog
// holds the coloris name. (modelId, name) pairs are unique, enforced by
// the service.
type Coloris struct {
	entity.Catalog

	// ModelID references the owning product model
	ModelID id.ModelID `db:"model_id" json:"modelId"`
}

// NewColoris creates a colorway for a model.
func NewColoris(code, name string, modelID id.ModelID) *Coloris {
	return &Coloris{
		Catalog: entity.NewCatalog(code, name),
		ModelID: modelID,
	}
}

// Validate implements entity.Validatable interface.
func (c *Coloris) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.ModelID) {
		return apperror.NewValidation("model reference is required").
			WithDetail("field", "modelId")
	}

	return nil
}
