// Package register_repo provides PostgreSQL implementations for register
// repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/registers/stock"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	productsTable       = "cat_products"
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovement inserts a movement record.
func (r *StockRepo) CreateMovement(ctx context.Context, m *stock.Movement) error {
	q := r.builder.Insert(stockMovementsTable).
		Columns("id", "product_id", "quantity", "source", "activity_id", "created_at").
		Values(m.ID, m.ProductID, m.Quantity, m.Source, m.ActivityID, m.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}

// History returns movement history for a product, newest first.
func (r *StockRepo) History(ctx context.Context, productID id.ProductID, filter stock.MovementFilter) ([]*stock.Movement, error) {
	q := r.builder.Select(
		"id", "deletion_mark", "version",
		"product_id", "quantity", "source", "activity_id", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID})

	if filter.Source != nil {
		q = q.Where(squirrel.Eq{"source": *filter.Source})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	q = q.OrderBy("created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []*stock.Movement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// ApplyDelta atomically adds delta to the product's stock, clamping the
// result at zero, and returns the new stock value.
func (r *StockRepo) ApplyDelta(ctx context.Context, productID id.ProductID, delta types.Quantity) (types.Quantity, error) {
	sql := fmt.Sprintf(`
		UPDATE %s
		SET stock = GREATEST(0, stock + $2),
		    version = version + 1
		WHERE id = $1
		RETURNING stock
	`, productsTable)

	var newStockScaled int64
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, productID, delta.Int64Scaled()).Scan(&newStockScaled)
	if err == pgx.ErrNoRows {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	if err != nil {
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}

	return types.NewQuantityFromInt64Scaled(newStockScaled), nil
}

// SumByProduct computes the signed sum of all movements for a product.
func (r *StockRepo) SumByProduct(ctx context.Context, productID id.ProductID) (types.Quantity, error) {
	sql := fmt.Sprintf(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM %s
		WHERE product_id = $1
	`, stockMovementsTable)

	var sumScaled int64
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, productID).Scan(&sumScaled)
	if err != nil && err != pgx.ErrNoRows {
		return 0, fmt.Errorf("sum movements: %w", err)
	}

	return types.NewQuantityFromInt64Scaled(sumScaled), nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
