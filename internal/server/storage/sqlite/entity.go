package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/benchtop/labsync/internal/models"
	"github.com/benchtop/labsync/internal/server/storage"
)

// GetEntity returns the current authoritative record, tombstone included.
// Returns ErrEntityNotFound if no row exists.
func (s *Storage) GetEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.EntityRecord, error) {
	query := `
		SELECT entity_type, entity_id, version, updated_at, deleted, payload
		FROM entities
		WHERE entity_type = ? AND entity_id = ?
	`

	record, err := scanEntity(s.db.QueryRowContext(ctx, query, entityType, entityID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return record, nil
}

// ApplyMutation writes the record and its idempotency-ledger row in one
// transaction. The record gets the next change sequence for its type, so
// ChangesSince hands it out exactly once per watermark.
func (s *Storage) ApplyMutation(ctx context.Context, record *models.EntityRecord, mutationID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Tombstones are never removed, so MAX(seq) is monotonic.
	var seq int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM entities WHERE entity_type = ?`,
		record.EntityType,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to allocate change sequence: %w", err)
	}

	upsert := `
		INSERT INTO entities (entity_type, entity_id, version, updated_at, deleted, payload, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			version = excluded.version,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted,
			payload = excluded.payload,
			seq = excluded.seq
	`

	_, err = tx.ExecContext(ctx, upsert,
		record.EntityType,
		record.EntityID,
		record.Version,
		record.UpdatedAt.UnixNano(),
		boolToInt(record.Deleted),
		[]byte(record.Payload),
		seq,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO applied_mutations (mutation_id, entity_type, entity_id, result_version, applied_at)
		 VALUES (?, ?, ?, ?, ?)`,
		mutationID,
		record.EntityType,
		record.EntityID,
		record.Version,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record applied mutation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mutation: %w", err)
	}

	return nil
}

// AppliedMutationVersion looks up the idempotency ledger.
func (s *Storage) AppliedMutationVersion(ctx context.Context, mutationID string) (int64, bool, error) {
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT result_version FROM applied_mutations WHERE mutation_id = ?`,
		mutationID,
	).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query applied mutation: %w", err)
	}

	return version, true, nil
}

// ChangesSince returns records of the type with seq newer than the token,
// ordered by seq ascending. Per entity, seq order equals version order, so
// clients always observe strictly increasing versions.
func (s *Storage) ChangesSince(ctx context.Context, entityType models.EntityType, token string) ([]*models.EntityRecord, string, error) {
	since, err := parseToken(token)
	if err != nil {
		return nil, "", err
	}

	query := `
		SELECT entity_type, entity_id, version, updated_at, deleted, payload, seq
		FROM entities
		WHERE entity_type = ? AND seq > ?
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, entityType, since)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query changes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*models.EntityRecord
	maxSeq := since

	for rows.Next() {
		record := &models.EntityRecord{}
		var deleted int
		var updatedAt, seq int64
		var payload []byte

		err := rows.Scan(
			&record.EntityType,
			&record.EntityID,
			&record.Version,
			&updatedAt,
			&deleted,
			&payload,
			&seq,
		)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan change row: %w", err)
		}

		record.UpdatedAt = time.Unix(0, updatedAt).UTC()
		record.Deleted = intToBool(deleted)
		record.Payload = payload

		if seq > maxSeq {
			maxSeq = seq
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("rows iteration error: %w", err)
	}

	return records, formatToken(maxSeq), nil
}

// SaveAttachmentMeta persists attachment metadata rows forwarded with a push.
func (s *Storage) SaveAttachmentMeta(ctx context.Context, metas []models.AttachmentMeta) error {
	if len(metas) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().Unix()
	for _, meta := range metas {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO attachments (entity_type, entity_id, filename, mime_type, size, received_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			meta.EntityType, meta.EntityID, meta.Filename, meta.MimeType, meta.Size, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert attachment meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attachment metas: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*models.EntityRecord, error) {
	record := &models.EntityRecord{}
	var deleted int
	var updatedAt int64
	var payload []byte

	err := row.Scan(
		&record.EntityType,
		&record.EntityID,
		&record.Version,
		&updatedAt,
		&deleted,
		&payload,
	)
	if err != nil {
		return nil, err
	}

	record.UpdatedAt = time.Unix(0, updatedAt).UTC()
	record.Deleted = intToBool(deleted)
	record.Payload = payload

	return record, nil
}

// Watermark tokens are the textual change sequence. Clients treat them as
// opaque; only this package parses them.
func parseToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	seq, err := strconv.ParseInt(token, 10, 64)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("%w: %q", storage.ErrBadCursorToken, token)
	}
	return seq, nil
}

func formatToken(seq int64) string {
	return strconv.FormatInt(seq, 10)
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
