package storage

import (
	"context"

	"github.com/benchtop/labsync/internal/models"
)

//go:generate moq -out storage_mock.go . Storage

// EntityStorage is the durable local store for entity records.
//
// Tombstoned records stay in the store so sync can see them, but reads
// through GetRecord and ListRecords treat them as absent.
type EntityStorage interface {
	// SaveRecord stores or replaces a record as-is.
	SaveRecord(ctx context.Context, record *models.EntityRecord) error

	// GetRecord returns the record, or ErrRecordNotFound if it is
	// absent or tombstoned.
	GetRecord(ctx context.Context, entityType models.EntityType, entityID string) (*models.EntityRecord, error)

	// ListRecords returns all live records of a type ordered by entity id.
	ListRecords(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error)

	// DeleteRecord tombstones a record and bumps its local version.
	DeleteRecord(ctx context.Context, entityType models.EntityType, entityID string) error

	// SnapshotType returns every record of a type, tombstones included,
	// ordered by entity id.
	SnapshotType(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error)

	// ApplyPulled applies a pull batch in one transaction. A pulled
	// record replaces the local one unless the local version is
	// strictly higher.
	ApplyPulled(ctx context.Context, records []*models.EntityRecord) error
}

// QueueStorage persists queued mutations in enqueue order.
type QueueStorage interface {
	// AppendMutation persists a new mutation at the tail of the queue.
	AppendMutation(ctx context.Context, mutation *models.QueuedMutation) error

	// UpdateMutation replaces a persisted mutation in place.
	UpdateMutation(ctx context.Context, mutation *models.QueuedMutation) error

	// RemoveMutation removes a mutation by id.
	RemoveMutation(ctx context.Context, id string) error

	// GetMutation returns a mutation by id.
	GetMutation(ctx context.Context, id string) (*models.QueuedMutation, error)

	// ListMutations returns all queued mutations in enqueue order.
	ListMutations(ctx context.Context) ([]*models.QueuedMutation, error)
}

// CursorStorage persists the sync cursor.
type CursorStorage interface {
	// SaveCursor stores the cursor.
	SaveCursor(ctx context.Context, cursor *models.SyncCursor) error

	// GetCursor returns the stored cursor, an empty cursor if none was
	// ever saved, or ErrCorrupted if the stored one fails to decode.
	GetCursor(ctx context.Context) (*models.SyncCursor, error)
}

// AttachmentStorage holds attachment metadata awaiting the next push.
type AttachmentStorage interface {
	AddPendingAttachment(ctx context.Context, meta models.AttachmentMeta) error
	PendingAttachments(ctx context.Context) ([]models.AttachmentMeta, error)
	ClearPendingAttachments(ctx context.Context) error
}

// Storage combines all client storage concerns.
type Storage interface {
	EntityStorage
	QueueStorage
	CursorStorage
	AttachmentStorage

	Close() error
}
