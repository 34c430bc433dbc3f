package reports

import (
	"context"
	"time"

	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/domain/documents/activity"
)

// Repository defines report data access. The implementation composes
// the journal, catalog, and cost repositories in the storage layer.
type Repository interface {
	// ActivitiesInRange fetches journal records with dates in [from, to].
	ActivitiesInRange(ctx context.Context, from, to time.Time) ([]*activity.Activity, error)

	// AllActivities fetches the whole journal, for unbounded reports.
	AllActivities(ctx context.Context) ([]*activity.Activity, error)

	// Catalog fetches products with their models and colorways.
	Catalog(ctx context.Context) (Catalog, error)

	// CostsForMonths fetches cost rows for the given month keys.
	CostsForMonths(ctx context.Context, months []types.MonthKey) ([]*costs.MonthlyCost, error)
}
