package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/tx"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/audit"
	"atelierdesk/internal/domain/registers/stock"
	"atelierdesk/pkg/logger"
	"atelierdesk/pkg/numerator"
)

// Service provides business operations for the activity journal.
type Service struct {
	repo      Repository
	stockRepo stock.Repository
	numerator numerator.Generator
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new journal service.
func NewService(
	repo Repository,
	stockRepo stock.Repository,
	gen numerator.Generator,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		stockRepo: stockRepo,
		numerator: gen,
		txManager: txManager,
		auditor:   auditor,
	}
}

// movementSource maps a journal type to its stock movement source.
// Corrections become inventory adjustments; OTHER never moves stock.
func movementSource(t Type) (stock.Source, bool) {
	switch t {
	case TypeCreation:
		return stock.SourceCreation, true
	case TypeSale:
		return stock.SourceSale, true
	case TypeStockCorrection:
		return stock.SourceInventoryAdjustment, true
	default:
		return "", false
	}
}

// CreateFromForm validates a submitted form and records the activity.
func (s *Service) CreateFromForm(ctx context.Context, form *Form) (*Activity, error) {
	a, err := form.ToActivity()
	if err != nil {
		return nil, err
	}
	if err := s.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Create persists a journal record and, when the record moves stock,
// exactly one matching stock movement in the same transaction.
func (s *Service) Create(ctx context.Context, a *Activity) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}

	if a.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ACT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		a.Number = number
	}

	audit.EnrichCreatedBy(ctx, &a.CreatedBy)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}

		source, moves := movementSource(a.Type)
		if !moves || a.ProductID == nil || a.Quantity.IsZero() {
			return nil
		}

		m := stock.NewMovement(*a.ProductID, a.Quantity, source)
		activityID := a.ID
		m.ActivityID = &activityID

		// The sign convention must hold before anything is persisted.
		if !stock.IsValidQuantityForSource(m.Quantity, m.Source) {
			return apperror.NewValidation("quantity sign does not match movement source").
				WithDetail("field", "quantity").
				WithDetail("value", m.Quantity.String()).
				WithDetail("source", string(m.Source))
		}

		if err := s.stockRepo.CreateMovement(ctx, m); err != nil {
			return fmt.Errorf("create stock movement: %w", err)
		}
		if _, err := s.stockRepo.ApplyDelta(ctx, m.ProductID, m.Quantity); err != nil {
			return fmt.Errorf("apply stock delta: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, a)

	logger.Info(ctx, "activity recorded",
		"id", a.ID,
		"number", a.Number,
		"type", string(a.Type),
	)
	return nil
}

// recordAudit writes the audit trail entry. Failures are logged, never
// propagated: the journal record is already committed.
func (s *Service) recordAudit(ctx context.Context, a *Activity) {
	if s.auditor == nil {
		return
	}
	payload, err := json.Marshal(a)
	if err != nil {
		logger.Warn(ctx, "audit payload marshal failed", "error", err)
		return
	}
	entry := audit.NewEntry(ctx, "create", "activity", a.ID, payload)
	if err := s.auditor.Record(ctx, entry); err != nil {
		logger.Warn(ctx, "audit record failed", "error", err, "activity_id", a.ID)
	}
}

// GetByID retrieves a journal record.
func (s *Service) GetByID(ctx context.Context, activityID id.ActivityID) (*Activity, error) {
	a, err := s.repo.GetByID(ctx, activityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("activity", activityID.String())
		}
		return nil, err
	}
	return a, nil
}

// List retrieves journal records with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Activity], error) {
	return s.repo.List(ctx, filter)
}
