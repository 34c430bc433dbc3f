// Package report_repo composes the journal, catalog, and cost
// repositories into the reporting data source.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/domain/documents/activity"
	"atelierdesk/internal/domain/reports"
	"atelierdesk/internal/infrastructure/storage/postgres"
	"atelierdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"atelierdesk/internal/infrastructure/storage/postgres/cost_repo"
	"atelierdesk/internal/infrastructure/storage/postgres/document_repo"
)

// catalogPageSize bounds each catalog fetch; the loop pages until done.
const catalogPageSize = 1000

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	activities *document_repo.ActivityRepo
	products   *catalog_repo.ProductRepo
	models     *catalog_repo.ModelRepo
	colorways  *catalog_repo.ColorisRepo
	monthly    *cost_repo.MonthlyCostRepo
}

// NewReportRepo creates the reporting data source.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		activities: document_repo.NewActivityRepo(txManager),
		products:   catalog_repo.NewProductRepo(txManager),
		models:     catalog_repo.NewModelRepo(txManager),
		colorways:  catalog_repo.NewColorisRepo(txManager),
		monthly:    cost_repo.NewMonthlyCostRepo(txManager),
	}
}

// ActivitiesInRange fetches journal records with dates in [from, to].
func (r *ReportRepo) ActivitiesInRange(ctx context.Context, from, to time.Time) ([]*activity.Activity, error) {
	return r.activities.ListInRange(ctx, from, to)
}

// AllActivities fetches the whole journal.
func (r *ReportRepo) AllActivities(ctx context.Context) ([]*activity.Activity, error) {
	return r.activities.ListAll(ctx)
}

// Catalog fetches products with their models and colorways.
// Soft-deleted rows are included: journal records keep referencing them
// and reports must still resolve those joins.
func (r *ReportRepo) Catalog(ctx context.Context) (reports.Catalog, error) {
	var catalog reports.Catalog

	products, err := listAll(ctx, r.products.List)
	if err != nil {
		return catalog, fmt.Errorf("fetch products: %w", err)
	}
	models, err := listAll(ctx, r.models.List)
	if err != nil {
		return catalog, fmt.Errorf("fetch models: %w", err)
	}
	colorways, err := listAll(ctx, r.colorways.List)
	if err != nil {
		return catalog, fmt.Errorf("fetch colorways: %w", err)
	}

	catalog.Products = products
	catalog.Models = models
	catalog.Colorways = colorways
	return catalog, nil
}

// CostsForMonths fetches cost rows for the given month keys.
func (r *ReportRepo) CostsForMonths(ctx context.Context, months []types.MonthKey) ([]*costs.MonthlyCost, error) {
	return r.monthly.ListRange(ctx, months)
}

func listAll[T any](ctx context.Context, list func(context.Context, domain.ListFilter) (domain.ListResult[T], error)) ([]T, error) {
	var items []T
	offset := 0
	for {
		result, err := list(ctx, domain.ListFilter{
			IncludeDeleted: true,
			OrderBy:        "id",
			Limit:          catalogPageSize,
			Offset:         offset,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if len(result.Items) < catalogPageSize {
			return items, nil
		}
		offset += catalogPageSize
	}
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
