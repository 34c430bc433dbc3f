// Package audit provides the audit trail contract and entity helpers.
package audit

import (
	"context"
	"time"

	appctx "atelierdesk/internal/core/context"
	"atelierdesk/internal/core/id"
)

// Entry is a single audit trail record. Payload holds the entity
// snapshot as JSON; storage compresses it before persisting.
type Entry struct {
	ID         id.ID     `db:"id" json:"id"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entityType"`
	EntityID   id.ID     `db:"entity_id" json:"entityId"`
	UserID     string    `db:"user_id" json:"userId,omitempty"`
	Payload    []byte    `db:"payload" json:"payload,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Recorder persists audit entries. Implementations live in the storage
// layer; recording failures must not fail the business operation.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// NewEntry builds an entry stamped with the context user and current time.
func NewEntry(ctx context.Context, action, entityType string, entityID id.ID, payload []byte) Entry {
	return Entry{
		ID:         id.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     appctx.GetUserID(ctx),
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
}

// EnrichCreatedBy sets a CreatedBy field from the context user ID.
// Use before persisting new documents; no-op when no user is present.
func EnrichCreatedBy(ctx context.Context, createdBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID != "" && createdBy != nil {
		*createdBy = userID
	}
}
