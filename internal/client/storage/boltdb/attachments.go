package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
)

// AddPendingAttachment queues attachment metadata for the next push
func (s *Storage) AddPendingAttachment(ctx context.Context, meta models.AttachmentMeta) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal attachment meta: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAttachments)

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save attachment meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// PendingAttachments returns queued attachment metadata in add order
func (s *Storage) PendingAttachments(ctx context.Context) ([]models.AttachmentMeta, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var metas []models.AttachmentMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketAttachments).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var meta models.AttachmentMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("failed to unmarshal attachment meta: %w", err)
			}
			metas = append(metas, meta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return metas, nil
}

// ClearPendingAttachments drops all queued attachment metadata
func (s *Storage) ClearPendingAttachments(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketAttachments); err != nil {
			return fmt.Errorf("failed to drop attachments bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketAttachments); err != nil {
			return fmt.Errorf("failed to recreate attachments bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
