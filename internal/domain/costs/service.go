package costs

import (
	"context"
	"fmt"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/tx"
	"atelierdesk/internal/core/types"
	"atelierdesk/pkg/logger"
)

// Service provides business operations for monthly costs.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new monthly cost service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Upsert validates and stores the cost row for its month.
func (s *Service) Upsert(ctx context.Context, c *MonthlyCost) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert monthly cost: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "monthly cost saved", "month", string(c.Month))
	return nil
}

// GetByMonth retrieves the cost row for a month.
func (s *Service) GetByMonth(ctx context.Context, month types.MonthKey) (*MonthlyCost, error) {
	if !month.IsValid() {
		return nil, apperror.NewValidation("month must be a valid YYYY-MM key").
			WithDetail("field", "month").
			WithDetail("value", string(month))
	}
	c, err := s.repo.GetByMonth(ctx, month)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("monthly cost", string(month))
		}
		return nil, err
	}
	return c, nil
}

// ListInRange retrieves cost rows for every month inside [start, end].
// Months without a stored row are absent from the result.
func (s *Service) ListInRange(ctx context.Context, start, end time.Time) ([]*MonthlyCost, error) {
	months := types.MonthKeysInRange(start, end)
	if len(months) == 0 {
		return nil, nil
	}
	return s.repo.ListRange(ctx, months)
}
