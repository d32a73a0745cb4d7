package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
)

var cursorKey = []byte("sync_cursor")

// SaveCursor stores the sync cursor
func (s *Storage) SaveCursor(ctx context.Context, cursor *models.SyncCursor) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("failed to marshal cursor: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketCursor).Put(cursorKey, data); err != nil {
			return fmt.Errorf("failed to save cursor: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetCursor returns the stored sync cursor. A missing cursor yields an
// empty one. A cursor that fails to decode yields ErrCorrupted so the
// caller can fall back to a full re-pull.
func (s *Storage) GetCursor(ctx context.Context) (*models.SyncCursor, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var cursor *models.SyncCursor

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCursor).Get(cursorKey)
		if data == nil {
			cursor = models.NewSyncCursor()
			return nil
		}

		cursor = &models.SyncCursor{}
		if err := json.Unmarshal(data, cursor); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrCorrupted, err)
		}
		if cursor.EntityVersions == nil {
			cursor.EntityVersions = make(map[models.EntityType]string)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cursor, nil
}
