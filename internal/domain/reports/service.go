package reports

import (
	"context"
	"fmt"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/documents/activity"
)

// Service fetches report inputs through the repository and delegates to
// the pure calculators.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperror.NewValidation("startDate and endDate are required").
			WithDetail("field", "startDate")
	}
	if start.After(end) {
		return apperror.NewValidation("startDate must not be after endDate").
			WithDetail("startDate", start.Format(time.RFC3339)).
			WithDetail("endDate", end.Format(time.RFC3339))
	}
	return nil
}

// Revenue builds the full revenue report for [start, end].
func (s *Service) Revenue(ctx context.Context, period Period, start, end time.Time) (*RevenueData, error) {
	if !IsValidPeriod(period) {
		return nil, apperror.NewValidation("invalid period").
			WithDetail("field", "period").
			WithDetail("value", string(period))
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	activities, err := s.repo.ActivitiesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	monthlyCosts, err := s.repo.CostsForMonths(ctx, types.MonthKeysInRange(start, end))
	if err != nil {
		return nil, fmt.Errorf("fetch monthly costs: %w", err)
	}

	data := ComputeRevenue(activities, catalog.Products, monthlyCosts, period, start, end)
	return &data, nil
}

// RevenueByProductType groups sale revenue by product category.
func (s *Service) RevenueByProductType(ctx context.Context, start, end time.Time) ([]TypeRevenue, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	activities, err := s.repo.ActivitiesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	return ComputeRevenueByProductType(activities, catalog, start, end), nil
}

// RevenueByProduct groups sale revenue by individual product.
func (s *Service) RevenueByProduct(ctx context.Context, start, end time.Time) ([]ProductRevenue, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	activities, err := s.repo.ActivitiesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	return ComputeRevenueByProduct(activities, catalog, start, end), nil
}

// ProfitsByPeriod buckets profit, sales, and creation counts.
func (s *Service) ProfitsByPeriod(ctx context.Context, period Period, start, end *time.Time) ([]PeriodStatistics, error) {
	if !IsValidPeriod(period) {
		return nil, apperror.NewValidation("invalid period").
			WithDetail("field", "period").
			WithDetail("value", string(period))
	}

	activities, err := s.activitiesForOptionalRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	return ComputeProfitsByPeriod(activities, catalog.Products, period, start, end), nil
}

// ProductMargins builds the per-product margin rollup.
func (s *Service) ProductMargins(ctx context.Context) ([]ProductMargin, error) {
	activities, err := s.repo.AllActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	return ComputeProductMargins(activities, catalog), nil
}

// Statistics rolls the whole business into one row.
func (s *Service) Statistics(ctx context.Context) (*BusinessStatistics, error) {
	activities, err := s.repo.AllActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	stats := ComputeBusinessStatistics(activities, catalog.Products)
	return &stats, nil
}

// TotalCreations counts CREATION records in the optional range.
func (s *Service) TotalCreations(ctx context.Context, start, end *time.Time) (int, error) {
	activities, err := s.activitiesForOptionalRange(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return ComputeTotalCreations(activities, start, end), nil
}

// activitiesForOptionalRange fetches bounded ranges through the range
// query and falls back to the whole journal when a bound is absent.
func (s *Service) activitiesForOptionalRange(ctx context.Context, start, end *time.Time) ([]*activity.Activity, error) {
	if start != nil && end != nil {
		if err := validateRange(*start, *end); err != nil {
			return nil, err
		}
		activities, err := s.repo.ActivitiesInRange(ctx, *start, *end)
		if err != nil {
			return nil, fmt.Errorf("fetch activities: %w", err)
		}
		return activities, nil
	}

	activities, err := s.repo.AllActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	return activities, nil
}
