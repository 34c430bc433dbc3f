// Package auth_repo provides the PostgreSQL implementation of the user
// repository.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/auth"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

const usersTable = "sys_users"

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[auth.User](),
	}
}

func (r *UserRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(r.selectCols...).From(usersTable)
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	data := postgres.StructToMap(user)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.Insert(usersTable).SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "email", user.Email).WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.UserID) (*auth.User, error) {
	user := &auth.User{}

	q := r.baseSelect().Where(squirrel.Eq{"id": userID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	user := &auth.User{}

	q := r.baseSelect().Where(squirrel.Eq{"email": email}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

// Update modifies a user with optimistic locking.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	data := postgres.StructToMap(user)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.Update(usersTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": user.ID}).
		Where(squirrel.Eq{"version": user.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("user", user.ID)
	}

	return nil
}

// ExistsByEmail checks if a user with the email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := r.builder.Select("1").
		From(usersTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}

	return true, nil
}

// Ensure interface compliance.
var _ auth.UserRepository = (*UserRepo)(nil)
