package storage

import (
	"context"

	"github.com/benchtop/labsync/internal/models"
)

//go:generate moq -out storage_mock.go . DataStorage

// DataStorage is the authoritative store behind the sync service.
//
// Reads return tombstoned records with Deleted set rather than hiding
// them: the service needs to see a server-side delete to adjudicate
// conflicts, and pulls must propagate tombstones to clients.
type DataStorage interface {
	// GetEntity returns the current authoritative record, tombstone
	// included. Returns ErrEntityNotFound if no row exists.
	GetEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.EntityRecord, error)

	// ApplyMutation writes the record and the idempotency-ledger row for
	// mutationID in a single transaction, assigning the record the next
	// change sequence for its type.
	ApplyMutation(ctx context.Context, record *models.EntityRecord, mutationID string) error

	// AppliedMutationVersion looks up the ledger: if mutationID has been
	// applied before, it returns the version that application produced
	// and true. A replayed push must return the original outcome, not
	// double-apply.
	AppliedMutationVersion(ctx context.Context, mutationID string) (int64, bool, error)

	// ChangesSince returns every record of the type whose change sequence
	// is newer than the given watermark token (empty token means from the
	// beginning), ordered so per-entity versions ascend, plus the new
	// token covering everything returned.
	ChangesSince(ctx context.Context, entityType models.EntityType, token string) ([]*models.EntityRecord, string, error)

	// SaveAttachmentMeta persists attachment metadata forwarded with a
	// push. Binary bodies live in the external attachments service.
	SaveAttachmentMeta(ctx context.Context, metas []models.AttachmentMeta) error
}
