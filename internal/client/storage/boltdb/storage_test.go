package boltdb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
)

// setupTestStorage creates a bolt store backed by a temp file
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "labsync.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func testRecord(entityType models.EntityType, id string, version int64) *models.EntityRecord {
	return &models.EntityRecord{
		EntityType: entityType,
		EntityID:   id,
		Version:    version,
		Payload:    json.RawMessage(`{"name":"` + id + `"}`),
	}
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "labsync.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketEntities, bucketQueue, bucketQueueIndex, bucketCursor, bucketAttachments} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	invalidPath := string([]byte{0})
	store, err := New(context.Background(), invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestStorage_SaveAndGetRecord(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	record := testRecord(models.EntityInstrument, "hplc-1", 1)
	require.NoError(t, store.SaveRecord(ctx, record))

	got, err := store.GetRecord(ctx, models.EntityInstrument, "hplc-1")
	require.NoError(t, err)
	assert.Equal(t, record.EntityID, got.EntityID)
	assert.Equal(t, record.Version, got.Version)
	assert.JSONEq(t, string(record.Payload), string(got.Payload))
}

func TestStorage_GetRecord_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetRecord(context.Background(), models.EntityInstrument, "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_DeleteRecord_Tombstones(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord(models.EntityMethod, "assay-1", 2)))
	require.NoError(t, store.DeleteRecord(ctx, models.EntityMethod, "assay-1"))

	// Readers no longer see the record.
	_, err := store.GetRecord(ctx, models.EntityMethod, "assay-1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	// Sync still does, with the version bumped.
	snapshot, err := store.SnapshotType(ctx, models.EntityMethod)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.True(t, snapshot[0].Deleted)
	assert.Equal(t, int64(3), snapshot[0].Version)

	// Deleting again fails.
	err = store.DeleteRecord(ctx, models.EntityMethod, "assay-1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_ListRecords_ExcludesTombstones(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord(models.EntityQCRecord, "qc-1", 1)))
	require.NoError(t, store.SaveRecord(ctx, testRecord(models.EntityQCRecord, "qc-2", 1)))
	require.NoError(t, store.DeleteRecord(ctx, models.EntityQCRecord, "qc-1"))

	// Another type must not leak into the scan.
	require.NoError(t, store.SaveRecord(ctx, testRecord(models.EntityInventoryItem, "reagent-1", 1)))

	records, err := store.ListRecords(ctx, models.EntityQCRecord)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "qc-2", records[0].EntityID)
}

func TestStorage_ApplyPulled_HigherVersionWins(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	local := testRecord(models.EntityInstrument, "hplc-1", 5)
	require.NoError(t, store.SaveRecord(ctx, local))

	stale := testRecord(models.EntityInstrument, "hplc-1", 3)
	stale.Payload = json.RawMessage(`{"name":"stale"}`)
	fresh := testRecord(models.EntityInstrument, "hplc-2", 2)

	require.NoError(t, store.ApplyPulled(ctx, []*models.EntityRecord{stale, fresh}))

	got, err := store.GetRecord(ctx, models.EntityInstrument, "hplc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Version, "stale pulled record must not roll back the local one")

	got, err = store.GetRecord(ctx, models.EntityInstrument, "hplc-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
}

func TestStorage_ApplyPulled_VersionTieAdoptsIncoming(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	local := testRecord(models.EntityInstrument, "hplc-1", 4)
	local.Payload = json.RawMessage(`{"name":"local"}`)
	require.NoError(t, store.SaveRecord(ctx, local))

	// Same version, different content: another client's accepted edit
	// took the version number a local optimistic bump predicted.
	incoming := testRecord(models.EntityInstrument, "hplc-1", 4)
	incoming.Payload = json.RawMessage(`{"name":"server"}`)
	require.NoError(t, store.ApplyPulled(ctx, []*models.EntityRecord{incoming}))

	got, err := store.GetRecord(ctx, models.EntityInstrument, "hplc-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"server"}`, string(got.Payload))
}

func TestStorage_ApplyPulled_Tombstone(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord(models.EntityInventoryItem, "reagent-1", 1)))

	tombstone := testRecord(models.EntityInventoryItem, "reagent-1", 2)
	tombstone.Deleted = true
	require.NoError(t, store.ApplyPulled(ctx, []*models.EntityRecord{tombstone}))

	_, err := store.GetRecord(ctx, models.EntityInventoryItem, "reagent-1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_Queue_EnqueueOrder(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, store.AppendMutation(ctx, &models.QueuedMutation{
			ID:         id,
			EntityType: models.EntityInstrument,
			EntityID:   "hplc-1",
			Operation:  models.OpUpdate,
		}))
	}

	mutations, err := store.ListMutations(ctx)
	require.NoError(t, err)
	require.Len(t, mutations, 3)
	assert.Equal(t, "m1", mutations[0].ID)
	assert.Equal(t, "m2", mutations[1].ID)
	assert.Equal(t, "m3", mutations[2].ID)
}

func TestStorage_Queue_UpdateAndRemove(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	mutation := &models.QueuedMutation{
		ID:         "m1",
		EntityType: models.EntityMethod,
		EntityID:   "assay-1",
		Operation:  models.OpCreate,
		Status:     models.StatusPending,
	}
	require.NoError(t, store.AppendMutation(ctx, mutation))

	mutation.Status = models.StatusInFlight
	mutation.AttemptCount = 1
	require.NoError(t, store.UpdateMutation(ctx, mutation))

	got, err := store.GetMutation(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInFlight, got.Status)
	assert.Equal(t, 1, got.AttemptCount)

	require.NoError(t, store.RemoveMutation(ctx, "m1"))

	_, err = store.GetMutation(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrMutationNotFound)

	err = store.RemoveMutation(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrMutationNotFound)
}

func TestStorage_Queue_OrderSurvivesRemoval(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, store.AppendMutation(ctx, &models.QueuedMutation{
			ID:         id,
			EntityType: models.EntityInstrument,
			EntityID:   "hplc-1",
			Operation:  models.OpUpdate,
		}))
	}
	require.NoError(t, store.RemoveMutation(ctx, "m2"))

	mutations, err := store.ListMutations(ctx)
	require.NoError(t, err)
	require.Len(t, mutations, 2)
	assert.Equal(t, "m1", mutations[0].ID)
	assert.Equal(t, "m3", mutations[1].ID)
}

func TestStorage_Cursor_EmptyWhenUnset(t *testing.T) {
	store := setupTestStorage(t)

	cursor, err := store.GetCursor(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Empty(t, cursor.EntityVersions)
}

func TestStorage_Cursor_RoundTrip(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	cursor := models.NewSyncCursor()
	cursor.Advance(models.EntityInstrument, "42")
	cursor.Advance(models.EntityMethod, "7")
	require.NoError(t, store.SaveCursor(ctx, cursor))

	got, err := store.GetCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", got.TokenFor(models.EntityInstrument))
	assert.Equal(t, "7", got.TokenFor(models.EntityMethod))
	assert.Equal(t, "", got.TokenFor(models.EntityQCRecord))
}

func TestStorage_Cursor_Corrupted(t *testing.T) {
	store := setupTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCursor).Put(cursorKey, []byte("not json"))
	})
	require.NoError(t, err)

	_, err = store.GetCursor(context.Background())
	assert.ErrorIs(t, err, storage.ErrCorrupted)
}

func TestStorage_PendingAttachments(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddPendingAttachment(ctx, models.AttachmentMeta{
		EntityType: models.EntityQCRecord,
		EntityID:   "qc-1",
		Filename:   "chromatogram.pdf",
		MimeType:   "application/pdf",
		Size:       2048,
	}))
	require.NoError(t, store.AddPendingAttachment(ctx, models.AttachmentMeta{
		EntityType: models.EntityQCRecord,
		EntityID:   "qc-1",
		Filename:   "notes.txt",
		MimeType:   "text/plain",
		Size:       12,
	}))

	metas, err := store.PendingAttachments(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "chromatogram.pdf", metas[0].Filename)

	require.NoError(t, store.ClearPendingAttachments(ctx))

	metas, err = store.PendingAttachments(ctx)
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestStorage_Closed(t *testing.T) {
	store := &Storage{}

	_, err := store.GetRecord(context.Background(), models.EntityInstrument, "x")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.SaveRecord(context.Background(), testRecord(models.EntityInstrument, "x", 1))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
