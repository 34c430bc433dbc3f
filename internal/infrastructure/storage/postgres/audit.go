package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/audit"
)

// CompressionAlgo specifies the compression algorithm used for payloads.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Compile-time check that AuditRepo implements audit.Recorder.
var _ audit.Recorder = (*AuditRepo)(nil)

// AuditRepo persists audit entries to sys_audit. Payloads above the
// threshold are zstd-compressed before insert.
type AuditRepo struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes
}

// NewAuditRepo creates a new audit repository.
func NewAuditRepo(txManager *TxManager) (*AuditRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditRepo{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record implements audit.Recorder.
func (r *AuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	payload := entry.Payload
	var compressed []byte
	algo := CompressionNone
	if len(payload) > r.compressThreshold {
		compressed = r.encoder.EncodeAll(payload, nil)
		payload = nil
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_audit (
			id, action, entity_type, entity_id, user_id,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	querier := r.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		entry.ID, entry.Action, entry.EntityType, entry.EntityID, entry.UserID,
		payload, compressed, algo, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EntityHistory retrieves audit history for an entity, newest first.
func (r *AuditRepo) EntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	sql := `
		SELECT id, action, entity_type, entity_id, user_id,
		       payload, payload_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var compressed []byte
		var algo CompressionAlgo
		err := rows.Scan(
			&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.UserID,
			&e.Payload, &compressed, &algo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if algo == CompressionZstd && len(compressed) > 0 {
			decompressed, err := r.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = decompressed
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
