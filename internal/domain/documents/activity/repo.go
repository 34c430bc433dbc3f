package activity

import (
	"context"
	"time"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain"
)

// ListFilter filters journal queries.
type ListFilter struct {
	Types     []Type
	ProductID *id.ProductID
	FromDate  *time.Time
	ToDate    *time.Time
	OrderBy   string
	Limit     int
	Offset    int
}

// Repository defines the interface for journal persistence.
// The journal is append-only: no update or hard delete operations.
type Repository interface {
	// Create inserts a journal record.
	Create(ctx context.Context, a *Activity) error

	// GetByID retrieves a record by ID.
	GetByID(ctx context.Context, id id.ActivityID) (*Activity, error)

	// List retrieves records with filtering, newest first by default.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Activity], error)

	// ListInRange retrieves all records with a date inside [from, to].
	// Used by the reporting layer.
	ListInRange(ctx context.Context, from, to time.Time) ([]*Activity, error)
}
