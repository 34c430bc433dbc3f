// Package document_repo provides PostgreSQL implementations for journal
// repositories.
package document_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/documents/activity"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

const activitiesTable = "doc_activities"

// ActivityRepo implements activity.Repository. The journal is
// append-only: the repo exposes no update or delete.
type ActivityRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewActivityRepo creates a new journal repository.
func NewActivityRepo(txManager *postgres.TxManager) *ActivityRepo {
	return &ActivityRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[activity.Activity](),
	}
}

func (r *ActivityRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(r.selectCols...).From(activitiesTable)
}

// Create inserts a journal record.
func (r *ActivityRepo) Create(ctx context.Context, a *activity.Activity) error {
	data := postgres.StructToMap(a)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.Insert(activitiesTable).SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("activity", "number", a.Number).WithCause(err)
		}
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

// GetByID retrieves a record by ID.
func (r *ActivityRepo) GetByID(ctx context.Context, activityID id.ActivityID) (*activity.Activity, error) {
	a := &activity.Activity{}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": activityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("activity", activityID.String())
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}

	return a, nil
}

// List retrieves records with filtering, newest first by default.
func (r *ActivityRepo) List(ctx context.Context, listFilter activity.ListFilter) (domain.ListResult[*activity.Activity], error) {
	result := domain.ListResult[*activity.Activity]{
		Limit:  listFilter.Limit,
		Offset: listFilter.Offset,
	}

	q := r.baseSelect()

	if len(listFilter.Types) > 0 {
		q = q.Where(squirrel.Eq{"type": listFilter.Types})
	}
	if listFilter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *listFilter.ProductID})
	}
	if listFilter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *listFilter.FromDate})
	}
	if listFilter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *listFilter.ToDate})
	}

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy := "date DESC, created_at DESC"
	if listFilter.OrderBy == "date" {
		orderBy = "date ASC, created_at ASC"
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
		return result, fmt.Errorf("list activities: %w", err)
	}

	return result, nil
}

// ListInRange retrieves all records with a date inside [from, to].
func (r *ActivityRepo) ListInRange(ctx context.Context, from, to time.Time) ([]*activity.Activity, error) {
	q := r.baseSelect().
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*activity.Activity
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list activities in range: %w", err)
	}

	return items, nil
}

// ListAll retrieves the whole journal in chronological order.
// Used by unbounded reports.
func (r *ActivityRepo) ListAll(ctx context.Context) ([]*activity.Activity, error) {
	q := r.baseSelect().OrderBy("date ASC, created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*activity.Activity
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list all activities: %w", err)
	}

	return items, nil
}

// Ensure interface compliance.
var _ activity.Repository = (*ActivityRepo)(nil)
