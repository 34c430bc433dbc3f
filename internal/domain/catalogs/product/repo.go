package product

import (
	"context"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByModelAndColoris retrieves the product for a model/coloris pair.
	FindByModelAndColoris(ctx context.Context, modelID id.ModelID, colorisID id.ColorisID) (*Product, error)

	// GetForUpdate retrieves a product with row lock.
	GetForUpdate(ctx context.Context, id id.ProductID) (*Product, error)

	// FindLowStock retrieves products with stock at or below the threshold.
	FindLowStock(ctx context.Context, threshold types.Quantity, filter domain.ListFilter) (domain.ListResult[*Product], error)
}

// ModelRepository defines the interface for product model persistence.
type ModelRepository interface {
	domain.CatalogRepository[*Model]

	// FindByTypeAndName retrieves a model by its unique (type, name) pair.
	FindByTypeAndName(ctx context.Context, category Category, name string) (*Model, error)
}

// ColorisRepository defines the interface for colorway persistence.
type ColorisRepository interface {
	domain.CatalogRepository[*Coloris]

	// FindByModelAndName retrieves a coloris by its unique (modelId, name) pair.
	FindByModelAndName(ctx context.Context, modelID id.ModelID, name string) (*Coloris, error)

	// ListByModel retrieves all colorways of a model.
	ListByModel(ctx context.Context, modelID id.ModelID) ([]*Coloris, error)
}
