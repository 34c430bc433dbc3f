// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories: products, models, and colorways.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/filter"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo provides common CRUD operations for catalog entities.
// Embed this in specific catalog repositories.
type BaseCatalogRepo[T any] struct {
	txManager  *postgres.TxManager
	tableName  string
	selectCols []string
	newFn      func() T
}

// NewBaseCatalogRepo creates a new base catalog repository.
func NewBaseCatalogRepo[T any](
	txManager *postgres.TxManager,
	tableName string,
	selectCols []string,
	newFn func() T,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txManager:  txManager,
		tableName:  tableName,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseCatalogRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Filter to only include columns that exist in DB
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate(r.tableName, pgErr.ConstraintName, "").WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// Exclude immutable fields from SET
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}) // optimistic lock: expect current version

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

// baseSelect creates a SELECT builder.
func (r *BaseCatalogRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves entity by ID.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// GetByCode retrieves entity by code.
func (r *BaseCatalogRepo[T]) GetByCode(ctx context.Context, code string) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, code)
		}
		return entity, fmt.Errorf("get by code: %w", err)
	}

	return entity, nil
}

// List retrieves entities with filtering and pagination.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, listFilter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  listFilter.Limit,
		Offset: listFilter.Offset,
	}

	q := r.baseSelect()

	if !listFilter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if listFilter.Search != "" {
		pattern := "%" + listFilter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	if len(listFilter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": listFilter.IDs})
	}

	var err error
	q, err = r.applyAdvancedFilters(q, listFilter.AdvancedFilters)
	if err != nil {
		return domain.ListResult[T]{}, err
	}

	// Count total (before pagination)
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(listFilter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if listFilter.Limit > 0 {
		q = q.Limit(uint64(listFilter.Limit))
	}
	if listFilter.Offset > 0 {
		q = q.Offset(uint64(listFilter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// applyAdvancedFilters applies complex filters to query.
func (r *BaseCatalogRepo[T]) applyAdvancedFilters(q squirrel.SelectBuilder, filters []filter.Item) (squirrel.SelectBuilder, error) {
	// Whitelist columns for SQL injection protection
	validCols := make(map[string]bool, len(r.selectCols))
	for _, col := range r.selectCols {
		validCols[col] = true
	}
	validCols["id"] = true

	for _, item := range filters {
		if !validCols[item.Field] {
			return q, fmt.Errorf("invalid filter column: %s", item.Field)
		}

		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{item.Field: item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotInList:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{item.Field: nil})
		case filter.Contains:
			val := fmt.Sprintf("%%%v%%", item.Value)
			q = q.Where(squirrel.ILike{item.Field: val})
		case filter.NotContains:
			val := fmt.Sprintf("%%%v%%", item.Value)
			q = q.Where(squirrel.NotILike{item.Field: val})
		default:
			return q, fmt.Errorf("unsupported filter operator: %s", item.Operator)
		}
	}

	return q, nil
}

// Exists checks if entity exists.
func (r *BaseCatalogRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// ExistsByCode checks if entity with given code exists.
func (r *BaseCatalogRepo[T]) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by code: %w", err)
	}

	return true, nil
}

// Delete performs soft delete by setting the deletion mark.
// Physical removal is intentionally not exposed: products referenced by
// journal records must stay resolvable for reports.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	return r.SetDeletionMark(ctx, entityID, true)
}

// SetDeletionMark sets or clears the deletion mark (soft delete).
func (r *BaseCatalogRepo[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	q := r.Builder().
		Update(r.tableName).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute set deletion mark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// GetForUpdate retrieves entity by ID with row lock.
func (r *BaseCatalogRepo[T]) GetForUpdate(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get for update: %w", err)
	}

	return entity, nil
}

// FindOne executes a SELECT query and returns a single entity.
func (r *BaseCatalogRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, "matching query")
		}
		return entity, fmt.Errorf("find one: %w", err)
	}

	return entity, nil
}

// FindMany executes a SELECT query and returns all matching entities.
func (r *BaseCatalogRepo[T]) FindMany(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find many: %w", err)
	}

	return items, nil
}

func (r *BaseCatalogRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols)+3)
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}
	allowed["id"] = struct{}{}
	allowed["code"] = struct{}{}
	allowed["name"] = struct{}{}

	if orderBy == "" {
		return "name ASC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy).WithDetail("field", field)
	}

	return field + " " + direction, nil
}
