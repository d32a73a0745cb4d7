package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop/labsync/internal/client/data"
	"github.com/benchtop/labsync/internal/client/queue"
	"github.com/benchtop/labsync/internal/client/storage/boltdb"
	syncengine "github.com/benchtop/labsync/internal/client/sync"
	"github.com/benchtop/labsync/internal/models"
	"github.com/benchtop/labsync/pkg/api"
)

func setupTestCli(t *testing.T) (*Cli, *queue.Queue) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	q := queue.New(store, logger)

	client := &syncengine.APIClientMock{
		PullFunc: func(ctx context.Context, req api.PullRequest) (*api.PullResponse, error) {
			return &api.PullResponse{}, nil
		},
		PushFunc: func(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{}, nil
		},
	}
	engine := syncengine.NewEngine(store, q, client, logger, syncengine.Config{ClientID: "bench-test"})

	return New(data.NewService(store, q), engine, q), q
}

func TestCli_PutGetDelete(t *testing.T) {
	c, _ := setupTestCli(t)
	ctx := context.Background()

	require.NoError(t, c.RunPut(ctx, []string{"instrument", "hplc-1", `{"name":"HPLC"}`}))
	require.NoError(t, c.RunGet(ctx, []string{"instrument", "hplc-1"}))
	require.NoError(t, c.RunList(ctx, []string{"instrument"}))
	require.NoError(t, c.RunDelete(ctx, []string{"instrument", "hplc-1"}))

	err := c.RunGet(ctx, []string{"instrument", "hplc-1"})
	assert.Error(t, err)
}

func TestCli_Put_BadArgs(t *testing.T) {
	c, _ := setupTestCli(t)
	ctx := context.Background()

	assert.Error(t, c.RunPut(ctx, nil))
	assert.Error(t, c.RunPut(ctx, []string{"centrifuge", `{}`}))
	assert.Error(t, c.RunGet(ctx, []string{"instrument"}))
	assert.Error(t, c.RunList(ctx, nil))
}

func TestCli_QueueAndResolve(t *testing.T) {
	c, q := setupTestCli(t)
	ctx := context.Background()

	require.NoError(t, c.RunPut(ctx, []string{"method", "assay-1", `{"name":"assay"}`}))

	mutations, err := q.List(ctx)
	require.NoError(t, err)
	require.Len(t, mutations, 1)
	id := mutations[0].ID

	require.NoError(t, c.RunQueue(ctx, nil))
	require.NoError(t, c.RunQueue(ctx, []string{"dead"}))
	assert.Error(t, c.RunQueue(ctx, []string{"bogus"}))

	require.NoError(t, q.MarkConflictManual(ctx, id))
	require.NoError(t, c.RunResolve(ctx, []string{id, "retry", "4"}))

	mutations, err = q.List(ctx)
	require.NoError(t, err)
	require.Len(t, mutations, 1)
	assert.Equal(t, int64(4), mutations[0].BaseVersion)
	assert.Equal(t, models.StatusPending, mutations[0].Status)

	require.NoError(t, c.RunResolve(ctx, []string{id, "drop"}))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Error(t, c.RunResolve(ctx, []string{id, "retry", "x"}))
	assert.Error(t, c.RunResolve(ctx, []string{id}))
}

func TestCli_SyncAndStatus(t *testing.T) {
	c, _ := setupTestCli(t)
	ctx := context.Background()

	require.NoError(t, c.RunSync(ctx))
	require.NoError(t, c.RunStatus(ctx))
}
