package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

const modelsTable = "cat_models"

// ModelRepo implements product.ModelRepository.
type ModelRepo struct {
	*BaseCatalogRepo[*product.Model]
}

// NewModelRepo creates a new model repository.
func NewModelRepo(txManager *postgres.TxManager) *ModelRepo {
	return &ModelRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			modelsTable,
			postgres.ExtractDBColumns[product.Model](),
			func() *product.Model { return &product.Model{} },
		),
	}
}

// FindByTypeAndName retrieves a model by its unique (type, name) pair.
func (r *ModelRepo) FindByTypeAndName(ctx context.Context, category product.Category, name string) (*product.Model, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"type": category}).
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// Ensure interface compliance.
var _ product.ModelRepository = (*ModelRepo)(nil)

const colorwaysTable = "cat_colorways"

// ColorisRepo implements product.ColorisRepository.
type ColorisRepo struct {
	*BaseCatalogRepo[*product.Coloris]
}

// NewColorisRepo creates a new coloris repository.
func NewColorisRepo(txManager *postgres.TxManager) *ColorisRepo {
	return &ColorisRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			colorwaysTable,
			postgres.ExtractDBColumns[product.Coloris](),
			func() *product.Coloris { return &product.Coloris{} },
		),
	}
}

// FindByModelAndName retrieves a coloris by its unique (modelId, name) pair.
func (r *ColorisRepo) FindByModelAndName(ctx context.Context, modelID id.ModelID, name string) (*product.Coloris, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"model_id": modelID}).
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByModel retrieves all colorways of a model.
func (r *ColorisRepo) ListByModel(ctx context.Context, modelID id.ModelID) ([]*product.Coloris, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"model_id": modelID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}

// Ensure interface compliance.
var _ product.ColorisRepository = (*ColorisRepo)(nil)
