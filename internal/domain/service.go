// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/tx"
	"atelierdesk/pkg/numerator"
)

// CatalogService provides business logic for catalog entities.
type CatalogService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	numerator numerator.Generator
	hooks     *HookRegistry[T]

	// entityName for error messages and numerator prefix
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Validatable] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	Numerator  numerator.Generator
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		numerator:  cfg.Numerator,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but ensure not-found is mapped to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// Create creates a new catalog entity.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) error {
	// 1. Validate entity invariants
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Run before-create hooks
	if err := s.hooks.RunBeforeCreate(ctx, entity); err != nil {
		return err
	}

	// 3. Create in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-create hooks (outside transaction)
	if err := s.hooks.RunAfterCreate(ctx, entity); err != nil {
		// Entity is already created, hook failures are not fatal.
		_ = err
	}

	return nil
}

// GetByID retrieves entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID.String())
	}
	return entity, nil
}

// GetByCode retrieves entity by code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	entity, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return entity, s.normalizeGetErr(err, code)
	}
	return entity, nil
}

// Update updates an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, entity T) error {
	// 1. Validate entity invariants
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Run before-update hooks
	if err := s.hooks.RunBeforeUpdate(ctx, entity); err != nil {
		return err
	}

	// 3. Update in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-update hooks
	if err := s.hooks.RunAfterUpdate(ctx, entity); err != nil {
		_ = err
	}

	return nil
}

// Delete performs soft delete.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	// 1. Get entity first (for hooks)
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	// 2. Run before-delete hooks
	if err := s.hooks.RunBeforeDelete(ctx, entity); err != nil {
		return err
	}

	// 3. Soft delete in transaction
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetDeletionMark(ctx, entityID, true); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-delete hooks
	if err := s.hooks.RunAfterDelete(ctx, entity); err != nil {
		_ = err
	}

	return nil
}

// SetDeletionMark sets or clears the deletion mark.
func (s *CatalogService[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return s.repo.SetDeletionMark(ctx, entityID, marked)
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if entity exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
