// Package cost_repo provides the PostgreSQL implementation of the
// monthly cost repository.
package cost_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

const monthlyCostsTable = "reg_monthly_costs"

// MonthlyCostRepo implements costs.Repository.
type MonthlyCostRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewMonthlyCostRepo creates a new monthly cost repository.
func NewMonthlyCostRepo(txManager *postgres.TxManager) *MonthlyCostRepo {
	return &MonthlyCostRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts or replaces the cost row for its month key.
func (r *MonthlyCostRepo) Upsert(ctx context.Context, c *costs.MonthlyCost) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (
			id, deletion_mark, version, month,
			shipping_cost, marketing_cost, overhead_cost
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (month) DO UPDATE SET
			shipping_cost  = EXCLUDED.shipping_cost,
			marketing_cost = EXCLUDED.marketing_cost,
			overhead_cost  = EXCLUDED.overhead_cost,
			version        = %s.version + 1
	`, monthlyCostsTable, monthlyCostsTable)

	_, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql,
		c.ID, c.DeletionMark, c.Version, c.Month,
		c.ShippingCost, c.MarketingCost, c.OverheadCost,
	)
	if err != nil {
		return fmt.Errorf("upsert monthly cost: %w", err)
	}

	return nil
}

// GetByMonth retrieves the cost row for a month.
func (r *MonthlyCostRepo) GetByMonth(ctx context.Context, month types.MonthKey) (*costs.MonthlyCost, error) {
	c := &costs.MonthlyCost{}

	q := r.builder.Select(
		"id", "deletion_mark", "version", "month",
		"shipping_cost", "marketing_cost", "overhead_cost",
	).From(monthlyCostsTable).
		Where(squirrel.Eq{"month": month}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("monthly cost", string(month))
		}
		return nil, fmt.Errorf("get monthly cost: %w", err)
	}

	return c, nil
}

// ListRange retrieves cost rows for the given month keys.
// Months without a row are simply absent from the result.
func (r *MonthlyCostRepo) ListRange(ctx context.Context, months []types.MonthKey) ([]*costs.MonthlyCost, error) {
	if len(months) == 0 {
		return nil, nil
	}

	q := r.builder.Select(
		"id", "deletion_mark", "version", "month",
		"shipping_cost", "marketing_cost", "overhead_cost",
	).From(monthlyCostsTable).
		Where(squirrel.Eq{"month": months}).
		OrderBy("month ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*costs.MonthlyCost
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list monthly costs: %w", err)
	}

	return rows, nil
}

// Ensure interface compliance.
var _ costs.Repository = (*MonthlyCostRepo)(nil)
