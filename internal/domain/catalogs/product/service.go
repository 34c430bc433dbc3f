package product

import (
	"context"
	"fmt"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/tx"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain"
	"atelierdesk/pkg/numerator"
)

// Service provides business logic for the product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	models    ModelRepository
	colorways ColorisRepository
	numerator numerator.Generator
}

// NewService creates a new product service.
func NewService(
	repo Repository,
	models ModelRepository,
	colorways ColorisRepository,
	txManager tx.Manager,
	gen numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		models:         models,
		colorways:      colorways,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)

	return svc
}

// prepareForCreate generates a code and checks catalog references.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}

	if err := s.checkReferences(ctx, p); err != nil {
		return err
	}

	// One product per model/coloris pair.
	if p.Representation() == ByReference {
		if existing, err := s.repo.FindByModelAndColoris(ctx, *p.ModelID, *p.ColorisID); err == nil && existing.ID != p.ID {
			return apperror.NewDuplicate("product", "model/coloris", p.ModelID.String())
		}
	}

	return nil
}

// checkReferences verifies that a reference-shaped product points at an
// existing model and one of its colorways.
func (s *Service) checkReferences(ctx context.Context, p *Product) error {
	if p.Representation() != ByReference {
		return nil
	}

	if _, err := s.models.GetByID(ctx, *p.ModelID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("referenced model does not exist").
				WithDetail("field", "modelId").
				WithDetail("value", p.ModelID.String())
		}
		return err
	}

	coloris, err := s.colorways.GetByID(ctx, *p.ColorisID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("referenced coloris does not exist").
				WithDetail("field", "colorisId").
				WithDetail("value", p.ColorisID.String())
		}
		return err
	}
	if coloris.ModelID != *p.ModelID {
		return apperror.NewValidation("coloris does not belong to the model").
			WithDetail("field", "colorisId").
			WithDetail("value", p.ColorisID.String())
	}

	return nil
}

// CreateFromForm validates a submitted form and creates the product.
func (s *Service) CreateFromForm(ctx context.Context, form *Form) (*Product, error) {
	p, err := form.ToProduct()
	if err != nil {
		return nil, err
	}
	if err := s.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindLowStock retrieves products with stock at or below the threshold.
func (s *Service) FindLowStock(ctx context.Context, threshold types.Quantity, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindLowStock(ctx, threshold, filter)
}

// ModelService provides business logic for product models.
type ModelService struct {
	*domain.CatalogService[*Model]
	repo      ModelRepository
	numerator numerator.Generator
}

// NewModelService creates a new model service.
func NewModelService(repo ModelRepository, txManager tx.Manager, gen numerator.Generator) *ModelService {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Model]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "product model",
	})

	svc := &ModelService{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkUnique)

	return svc
}

func (s *ModelService) prepareForCreate(ctx context.Context, m *Model) error {
	if m.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("MDL"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		m.Code = code
	}
	return s.checkUnique(ctx, m)
}

func (s *ModelService) checkUnique(ctx context.Context, m *Model) error {
	existing, err := s.repo.FindByTypeAndName(ctx, m.Type, m.Name)
	if err == nil && existing.ID != m.ID {
		return apperror.NewDuplicate("product model", "name", m.Name)
	}
	return nil
}

// ColorisService provides business logic for colorways.
type ColorisService struct {
	*domain.CatalogService[*Coloris]
	repo      ColorisRepository
	models    ModelRepository
	numerator numerator.Generator
}

// NewColorisService creates a new coloris service.
func NewColorisService(repo ColorisRepository, models ModelRepository, txManager tx.Manager, gen numerator.Generator) *ColorisService {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Coloris]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "coloris",
	})

	svc := &ColorisService{
		CatalogService: base,
		repo:           repo,
		models:         models,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkUnique)

	return svc
}

func (s *ColorisService) prepareForCreate(ctx context.Context, c *Coloris) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CLR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	if _, err := s.models.GetByID(ctx, c.ModelID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("referenced model does not exist").
				WithDetail("field", "modelId").
				WithDetail("value", c.ModelID.String())
		}
		return err
	}

	return s.checkUnique(ctx, c)
}

func (s *ColorisService) checkUnique(ctx context.Context, c *Coloris) error {
	existing, err := s.repo.FindByModelAndName(ctx, c.ModelID, c.Name)
	if err == nil && existing.ID != c.ID {
		return apperror.NewDuplicate("coloris", "name", c.Name)
	}
	return nil
}

// ListByModel retrieves colorways of a model.
func (s *ColorisService) ListByModel(ctx context.Context, modelID id.ModelID) ([]*Coloris, error) {
	return s.repo.ListByModel(ctx, modelID)
}
