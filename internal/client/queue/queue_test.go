package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/client/storage/boltdb"
	"github.com/benchtop/labsync/internal/models"
)

func setupTestQueue(t *testing.T, opts ...Option) *Queue {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(store, logger, opts...)
}

func newMutation(id string, entityType models.EntityType, entityID string, op models.Operation) *models.QueuedMutation {
	return &models.QueuedMutation{
		ID:         id,
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		Payload:    json.RawMessage(`{}`),
	}
}

func TestQueue_Enqueue_AssignsID(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	m := newMutation("", models.EntityInstrument, "hplc-1", models.OpCreate)
	require.NoError(t, q.Enqueue(ctx, m))

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, models.StatusPending, m.Status)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, DefaultMaxAttempts, m.MaxAttempts)

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQueue_PeekBatch_PerEntityFIFO(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	// Two mutations for the same entity, one for another.
	require.NoError(t, q.Enqueue(ctx, newMutation("m1", models.EntityInstrument, "hplc-1", models.OpCreate)))
	require.NoError(t, q.Enqueue(ctx, newMutation("m2", models.EntityInstrument, "hplc-1", models.OpUpdate)))
	require.NoError(t, q.Enqueue(ctx, newMutation("m3", models.EntityMethod, "assay-1", models.OpCreate)))

	batch, err := q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "m1", batch[0].ID, "only the head mutation per entity is eligible")
	assert.Equal(t, "m3", batch[1].ID)

	// Acking the head releases its successor.
	require.NoError(t, q.MarkAcked(ctx, "m1"))

	batch, err = q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "m2", batch[0].ID)
}

func TestQueue_PeekBatch_RespectsLimit(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	for i := range 5 {
		id := string(rune('a' + i))
		require.NoError(t, q.Enqueue(ctx, newMutation("m-"+id, models.EntityInstrument, "inst-"+id, models.OpCreate)))
	}

	batch, err := q.PeekBatch(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, batch, 3)
}

func TestQueue_PeekBatch_SkipsBackedOff(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	q := setupTestQueue(t, WithClock(clock), WithBackoff(func(attempts int) time.Duration {
		return time.Minute
	}))
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newMutation("m1", models.EntityInstrument, "hplc-1", models.OpCreate)))
	require.NoError(t, q.MarkFailed(ctx, "m1", "server unreachable"))

	batch, err := q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, batch, "backed-off mutation is not eligible yet")

	now = now.Add(2 * time.Minute)

	batch, err = q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "m1", batch[0].ID)
	assert.Equal(t, models.StatusFailed, batch[0].Status)
	assert.Equal(t, 1, batch[0].AttemptCount)
}

func TestQueue_MarkFailed_DeadLetters(t *testing.T) {
	q := setupTestQueue(t, WithMaxAttempts(2))
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newMutation("m1", models.EntityInstrument, "hplc-1", models.OpCreate)))
	require.NoError(t, q.Enqueue(ctx, newMutation("m2", models.EntityInstrument, "hplc-1", models.OpUpdate)))

	require.NoError(t, q.MarkFailed(ctx, "m1", "boom"))
	require.NoError(t, q.MarkFailed(ctx, "m1", "boom"))

	dead, err := q.Dead(ctx)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, "m1", dead[0].ID)
	assert.Equal(t, "boom", dead[0].FailReason)

	// Dead mutations do not block successors for the same entity.
	batch, err := q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "m2", batch[0].ID)
}

func TestQueue_InFlightBlocksEntity(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newMutation("m1", models.EntityInstrument, "hplc-1", models.OpCreate)))
	require.NoError(t, q.Enqueue(ctx, newMutation("m2", models.EntityInstrument, "hplc-1", models.OpUpdate)))
	require.NoError(t, q.MarkInFlight(ctx, "m1"))

	batch, err := q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, batch, "in-flight head blocks the whole entity")
}

func TestQueue_MarkConflictManual(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newMutation("m1", models.EntityMethod, "assay-1", models.OpUpdate)))
	require.NoError(t, q.MarkConflictManual(ctx, "m1"))

	batch, err := q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, batch, "parked mutation is never retried automatically")

	parked, err := q.AwaitingManual(ctx)
	require.NoError(t, err)
	require.Len(t, parked, 1)
	assert.Equal(t, models.StatusFailed, parked[0].Status)

	// Resubmitting with a new base releases it.
	require.NoError(t, q.Resubmit(ctx, "m1", 7))

	batch, err = q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, int64(7), batch[0].BaseVersion)
	assert.False(t, batch[0].AwaitingManual)
}

func TestQueue_UpdateBaseVersion(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	m := newMutation("m1", models.EntityMethod, "assay-1", models.OpUpdate)
	m.BaseVersion = 2
	require.NoError(t, q.Enqueue(ctx, m))
	require.NoError(t, q.MarkInFlight(ctx, "m1"))
	require.NoError(t, q.UpdateBaseVersion(ctx, "m1", 5))

	batch, err := q.PeekBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, int64(5), batch[0].BaseVersion)
	assert.Equal(t, models.StatusPending, batch[0].Status)
}

func TestQueue_Discard(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newMutation("m1", models.EntityInstrument, "hplc-1", models.OpCreate)))
	require.NoError(t, q.Discard(ctx, "m1"))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	err = q.Discard(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrMutationNotFound)
}

func TestExponentialBackoff(t *testing.T) {
	backoff := ExponentialBackoff(time.Second, time.Minute)

	for attempts := range 20 {
		d := backoff(attempts)
		assert.GreaterOrEqual(t, d, time.Second, "attempt %d", attempts)
		assert.LessOrEqual(t, d, time.Minute+30*time.Second, "attempt %d", attempts)
	}
}
