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

// Queue entries are keyed by a big-endian bucket sequence number so a
// cursor walk yields enqueue order. The index bucket maps mutation id
// to that sequence key for in-place updates and removal.

// AppendMutation persists a new mutation at the tail of the queue
func (s *Storage) AppendMutation(ctx context.Context, mutation *models.QueuedMutation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(mutation)
	if err != nil {
		return fmt.Errorf("failed to marshal mutation: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		index := tx.Bucket(bucketQueueIndex)

		seq, err := queue.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		if err := queue.Put(key, data); err != nil {
			return fmt.Errorf("failed to save mutation: %w", err)
		}
		if err := index.Put([]byte(mutation.ID), key); err != nil {
			return fmt.Errorf("failed to index mutation: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// UpdateMutation replaces a persisted mutation in place
func (s *Storage) UpdateMutation(ctx context.Context, mutation *models.QueuedMutation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(mutation)
	if err != nil {
		return fmt.Errorf("failed to marshal mutation: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		index := tx.Bucket(bucketQueueIndex)

		key := index.Get([]byte(mutation.ID))
		if key == nil {
			return storage.ErrMutationNotFound
		}

		if err := tx.Bucket(bucketQueue).Put(key, data); err != nil {
			return fmt.Errorf("failed to save mutation: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// RemoveMutation removes a mutation by id
func (s *Storage) RemoveMutation(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		index := tx.Bucket(bucketQueueIndex)

		key := index.Get([]byte(id))
		if key == nil {
			return storage.ErrMutationNotFound
		}

		if err := tx.Bucket(bucketQueue).Delete(key); err != nil {
			return fmt.Errorf("failed to delete mutation: %w", err)
		}
		if err := index.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete index entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// GetMutation returns a mutation by id
func (s *Storage) GetMutation(ctx context.Context, id string) (*models.QueuedMutation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var mutation *models.QueuedMutation

	err := s.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(bucketQueueIndex).Get([]byte(id))
		if key == nil {
			return storage.ErrMutationNotFound
		}

		data := tx.Bucket(bucketQueue).Get(key)
		if data == nil {
			return storage.ErrMutationNotFound
		}

		mutation = &models.QueuedMutation{}
		if err := json.Unmarshal(data, mutation); err != nil {
			return fmt.Errorf("failed to unmarshal mutation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mutation, nil
}

// ListMutations returns all queued mutations in enqueue order
func (s *Storage) ListMutations(ctx context.Context) ([]*models.QueuedMutation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var mutations []*models.QueuedMutation

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketQueue).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			mutation := &models.QueuedMutation{}
			if err := json.Unmarshal(v, mutation); err != nil {
				return fmt.Errorf("failed to unmarshal mutation: %w", err)
			}
			mutations = append(mutations, mutation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mutations, nil
}
