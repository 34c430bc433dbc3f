package entity

import (
	"context"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

///////////////////
// Base Entity   //
///////////////////

// BaseEntity contains common fields for all entities (Catalogs, Documents, etc.).
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// DeletionMark indicates soft-deleted entity
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// Touch increments version (for optimistic locking).
func (b *BaseEntity) Touch() {
	b.Version++
}

// MarkDeleted sets the deletion mark.
func (b *BaseEntity) MarkDeleted() {
	b.DeletionMark = true
}

// Undelete clears the deletion mark.
func (b *BaseEntity) Undelete() {
	b.DeletionMark = false
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

//////////////
// Catalogs //
//////////////

// Catalog is the base type for reference data: products, product models,
// colorways.
type Catalog struct {
	BaseEntity

	// Code is a human-readable identifier (unique)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code can be auto-generated, so it's optional at creation
	// but required at save time

	return nil
}

///////////////
// Documents //
///////////////

// Document is the base type for journal records. The activity journal is
// append-only: documents are created and read, never updated in place.
type Document struct {
	BaseEntity

	// Number is the journal number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the record
	Date time.Time `db:"date" json:"date"`

	// Audit fields
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}

// NewDocument creates a new Document with generated ID and timestamps.
func NewDocument(date time.Time) Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       date,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
