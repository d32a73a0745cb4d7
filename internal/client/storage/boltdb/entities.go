package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
)

// entityKey builds the bucket key for a record
func entityKey(entityType models.EntityType, entityID string) []byte {
	return []byte(models.EntityKey(entityType, entityID))
}

// SaveRecord stores or replaces an entity record
func (s *Storage) SaveRecord(ctx context.Context, record *models.EntityRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)
		if err := bucket.Put(entityKey(record.EntityType, record.EntityID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRecord retrieves a live entity record. Tombstoned records are
// reported as not found.
func (s *Storage) GetRecord(ctx context.Context, entityType models.EntityType, entityID string) (*models.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)

		data := bucket.Get(entityKey(entityType, entityID))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record = &models.EntityRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		if record.Deleted {
			return storage.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords returns all live records of a type ordered by entity id
func (s *Storage) ListRecords(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error) {
	return s.scanType(entityType, false)
}

// SnapshotType returns all records of a type, tombstones included
func (s *Storage) SnapshotType(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error) {
	return s.scanType(entityType, true)
}

func (s *Storage) scanType(entityType models.EntityType, includeDeleted bool) ([]*models.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	prefix := []byte(string(entityType) + "/")
	var records []*models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketEntities).Cursor()
		for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
			record := &models.EntityRecord{}
			if err := json.Unmarshal(v, record); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}
			if record.Deleted && !includeDeleted {
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteRecord tombstones a record and bumps its local version
func (s *Storage) DeleteRecord(ctx context.Context, entityType models.EntityType, entityID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)
		key := entityKey(entityType, entityID)

		data := bucket.Get(key)
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record := &models.EntityRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		if record.Deleted {
			return storage.ErrRecordNotFound
		}

		record.Deleted = true
		record.Version++

		updated, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if err := bucket.Put(key, updated); err != nil {
			return fmt.Errorf("failed to save tombstone: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// ApplyPulled applies a pull batch in a single transaction. A pulled
// record replaces the local copy unless the local version is strictly
// higher; on a version tie the server-sourced record stands, matching
// how conflicts resolve ties.
func (s *Storage) ApplyPulled(ctx context.Context, records []*models.EntityRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)

		for _, record := range records {
			key := entityKey(record.EntityType, record.EntityID)

			if existing := bucket.Get(key); existing != nil {
				local := &models.EntityRecord{}
				if err := json.Unmarshal(existing, local); err != nil {
					return fmt.Errorf("failed to unmarshal record %s: %w", key, err)
				}
				if local.NewerThan(record) {
					continue
				}
			}

			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal record: %w", err)
			}
			if err := bucket.Put(key, data); err != nil {
				return fmt.Errorf("failed to save record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
