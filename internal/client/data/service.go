package data

import (
	"context"
	"errors"
	"fmt"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/benchtop/labsync/internal/client/queue"
	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
)

// Service is the local read/write surface for lab entities. Every
// write lands in the local store and the mutation queue together, so
// edits made offline survive restarts and go out with the next sync.
type Service struct {
	storage storage.Storage
	queue   *queue.Queue
	now     func() time.Time
}

// NewService creates a new data service
func NewService(st storage.Storage, q *queue.Queue) *Service {
	return &Service{
		storage: st,
		queue:   q,
		now:     time.Now,
	}
}

// Put creates or updates an entity. An empty entityID creates a new
// entity with a generated id; the final id is returned.
func (s *Service) Put(ctx context.Context, entityType models.EntityType, entityID string, payload json.RawMessage) (string, error) {
	if _, err := models.DecodePayload(entityType, payload); err != nil {
		return "", fmt.Errorf("invalid payload: %w", err)
	}

	if entityID == "" {
		entityID = uuid.NewString()
	}

	now := s.now()
	operation := models.OpUpdate
	var baseVersion int64

	existing, err := s.storage.GetRecord(ctx, entityType, entityID)
	switch {
	case err == nil:
		baseVersion = existing.Version
	case errors.Is(err, storage.ErrRecordNotFound):
		operation = models.OpCreate
	default:
		return "", fmt.Errorf("failed to load record: %w", err)
	}

	// The local version moves ahead of the base so a follow-up edit
	// chains onto this one instead of citing the same base twice. The
	// queued mutation keeps the pre-bump base for the server's
	// concurrency check.
	record := &models.EntityRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Version:    baseVersion + 1,
		UpdatedAt:  now,
		Payload:    payload,
	}
	if err := s.storage.SaveRecord(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save record: %w", err)
	}

	err = s.queue.Enqueue(ctx, &models.QueuedMutation{
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   operation,
		BaseVersion: baseVersion,
		Payload:     payload,
		CreatedAt:   now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	return entityID, nil
}

// Get returns a live entity record.
func (s *Service) Get(ctx context.Context, entityType models.EntityType, entityID string) (*models.EntityRecord, error) {
	return s.storage.GetRecord(ctx, entityType, entityID)
}

// List returns all live records of a type.
func (s *Service) List(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error) {
	return s.storage.ListRecords(ctx, entityType)
}

// Delete tombstones an entity locally and queues the delete.
func (s *Service) Delete(ctx context.Context, entityType models.EntityType, entityID string) error {
	existing, err := s.storage.GetRecord(ctx, entityType, entityID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteRecord(ctx, entityType, entityID); err != nil {
		return fmt.Errorf("failed to tombstone record: %w", err)
	}

	err = s.queue.Enqueue(ctx, &models.QueuedMutation{
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   models.OpDelete,
		BaseVersion: existing.Version,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	return nil
}

// AttachFile queues attachment metadata for an existing entity.
func (s *Service) AttachFile(ctx context.Context, meta models.AttachmentMeta) error {
	if _, err := s.storage.GetRecord(ctx, meta.EntityType, meta.EntityID); err != nil {
		return err
	}
	return s.storage.AddPendingAttachment(ctx, meta)
}
