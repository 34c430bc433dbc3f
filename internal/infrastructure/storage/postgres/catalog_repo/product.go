package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

const productsTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productsTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByModelAndColoris retrieves the product for a model/coloris pair.
func (r *ProductRepo) FindByModelAndColoris(ctx context.Context, modelID id.ModelID, colorisID id.ColorisID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"model_id": modelID}).
		Where(squirrel.Eq{"coloris_id": colorisID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// FindLowStock retrieves products with stock at or below the threshold.
func (r *ProductRepo) FindLowStock(ctx context.Context, threshold types.Quantity, listFilter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	result := domain.ListResult[*product.Product]{
		Limit:  listFilter.Limit,
		Offset: listFilter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.LtOrEq{"stock": threshold})

	if listFilter.Search != "" {
		pattern := "%" + listFilter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("stock ASC", "name ASC")
	if listFilter.Limit > 0 {
		q = q.Limit(uint64(listFilter.Limit))
	}
	if listFilter.Offset > 0 {
		q = q.Offset(uint64(listFilter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("find low stock: %w", err)
	}

	return result, nil
}

// Ensure interface compliance.
var _ product.Repository = (*ProductRepo)(nil)
