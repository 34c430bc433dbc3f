package stock

import (
	"context"
	"fmt"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/tx"
	"atelierdesk/internal/core/types"
	"atelierdesk/pkg/logger"
)

// Service provides business operations for the stock register.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock register service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// RecordMovement validates a movement, persists it, and applies the
// stock delta atomically. Returns the product's new stock level.
//
// Callers already inside a transaction (journal orchestration) get the
// same transaction through context; standalone calls open their own.
func (s *Service) RecordMovement(ctx context.Context, m *Movement) (types.Quantity, error) {
	if err := m.Validate(ctx); err != nil {
		return 0, err
	}

	var newStock types.Quantity
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateMovement(ctx, m); err != nil {
			return fmt.Errorf("create movement: %w", err)
		}

		stock, err := s.repo.ApplyDelta(ctx, m.ProductID, m.Quantity)
		if err != nil {
			return fmt.Errorf("apply delta: %w", err)
		}
		newStock = stock
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "recorded stock movement",
		"product_id", m.ProductID,
		"quantity", m.Quantity.String(),
		"source", string(m.Source),
		"new_stock", newStock.String(),
	)

	return newStock, nil
}

// History returns movement history for a product.
func (s *Service) History(ctx context.Context, productID id.ProductID, filter MovementFilter) ([]*Movement, error) {
	if id.IsNil(productID) {
		return nil, apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	return s.repo.History(ctx, productID, filter)
}

// DerivedStock recomputes a product's stock from its movement history.
// The clamp-at-zero on writes means the derived value can run below the
// stored one; this is a diagnostic, not a correction.
func (s *Service) DerivedStock(ctx context.Context, productID id.ProductID) (types.Quantity, error) {
	if id.IsNil(productID) {
		return 0, apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	return s.repo.SumByProduct(ctx, productID)
}
