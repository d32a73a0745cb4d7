package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop/labsync/internal/models"
	"github.com/benchtop/labsync/internal/server/service"
	"github.com/benchtop/labsync/internal/server/storage"
	"github.com/benchtop/labsync/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func TestSyncHandler_HandlePull_InvalidBody(t *testing.T) {
	logger := setupTestLogger()
	svc := &SyncServiceMock{}
	handler := NewSyncHandler(logger, svc)

	req := httptest.NewRequest(http.MethodPost, "/sync/pull", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.HandlePull(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.PullCalls())
}

func TestSyncHandler_HandlePull_MissingClientID(t *testing.T) {
	logger := setupTestLogger()
	svc := &SyncServiceMock{}
	handler := NewSyncHandler(logger, svc)

	body, err := json.Marshal(api.PullRequest{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sync/pull", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandlePull(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_HandlePull_Success(t *testing.T) {
	logger := setupTestLogger()

	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := &SyncServiceMock{
		PullFunc: func(ctx context.Context, clientID string, since map[models.EntityType]string) (*service.PullResult, error) {
			return &service.PullResult{
				ServerTime: now,
				Changes: map[models.EntityType][]*models.EntityRecord{
					models.EntityInstrument: {
						{
							EntityType: models.EntityInstrument,
							EntityID:   "hplc-1",
							Version:    3,
							UpdatedAt:  now,
							Payload:    json.RawMessage(`{"name":"HPLC"}`),
						},
					},
				},
				Versions: map[models.EntityType]string{
					models.EntityInstrument: "42",
				},
			}, nil
		},
	}
	handler := NewSyncHandler(logger, svc)

	body, err := json.Marshal(api.PullRequest{
		ClientID: "bench-7",
		Since:    map[string]string{"instrument": "17"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sync/pull", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandlePull(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.PullResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Changes["instrument"], 1)
	assert.Equal(t, "hplc-1", resp.Changes["instrument"][0].EntityID)
	assert.Equal(t, int64(3), resp.Changes["instrument"][0].Version)
	assert.Equal(t, "42", resp.Versions["instrument"])

	calls := svc.PullCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "bench-7", calls[0].ClientID)
	assert.Equal(t, "17", calls[0].Since[models.EntityInstrument])
}

func TestSyncHandler_HandlePull_BadCursor(t *testing.T) {
	logger := setupTestLogger()
	svc := &SyncServiceMock{
		PullFunc: func(ctx context.Context, clientID string, since map[models.EntityType]string) (*service.PullResult, error) {
			return nil, storage.ErrBadCursorToken
		},
	}
	handler := NewSyncHandler(logger, svc)

	body, err := json.Marshal(api.PullRequest{
		ClientID: "bench-7",
		Since:    map[string]string{"instrument": "garbage"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sync/pull", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandlePull(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_HandlePush_Success(t *testing.T) {
	logger := setupTestLogger()

	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := &SyncServiceMock{
		PushFunc: func(ctx context.Context, clientID string, mutations []*models.QueuedMutation, attachments []models.AttachmentMeta) (*service.PushResult, error) {
			require.Len(t, mutations, 2)
			// Wire order within a type must survive flattening.
			assert.Equal(t, "m1", mutations[0].ID)
			assert.Equal(t, "m2", mutations[1].ID)
			return &service.PushResult{
				ServerTime: now,
				Accepted: []service.AcceptedInfo{
					{MutationID: "m1", EntityType: models.EntityMethod, EntityID: "assay-1", NewVersion: 1},
				},
				Conflicts: []service.ConflictInfo{
					{
						MutationID: "m2",
						Outcome: models.ConflictOutcome{
							EntityType:    models.EntityMethod,
							EntityID:      "assay-2",
							Resolution:    models.ResolutionServer,
							ClientVersion: 1,
							ServerVersion: 4,
							ResolvedRecord: &models.EntityRecord{
								EntityType: models.EntityMethod,
								EntityID:   "assay-2",
								Version:    4,
								UpdatedAt:  now,
								Payload:    json.RawMessage(`{"name":"v4"}`),
							},
						},
					},
				},
			}, nil
		},
	}
	handler := NewSyncHandler(logger, svc)

	body, err := json.Marshal(api.PushRequest{
		ClientID: "bench-7",
		Changes: map[string][]api.Mutation{
			"method": {
				{ID: "m1", EntityType: "method", EntityID: "assay-1", Operation: "create", Payload: json.RawMessage(`{"name":"assay"}`), CreatedAt: now},
				{ID: "m2", EntityType: "method", EntityID: "assay-2", Operation: "update", BaseVersion: 1, Payload: json.RawMessage(`{"name":"v2"}`), CreatedAt: now},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandlePush(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.PushResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Accepted, 1)
	assert.Equal(t, "m1", resp.Accepted[0].ID)
	assert.Equal(t, int64(1), resp.Accepted[0].NewVersion)

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "server", resp.Conflicts[0].Resolution)
	require.NotNil(t, resp.Conflicts[0].Record)
	assert.Equal(t, int64(4), resp.Conflicts[0].Record.Version)
}

func TestSyncHandler_HandlePush_UnknownTypeFlowsThrough(t *testing.T) {
	logger := setupTestLogger()
	svc := &SyncServiceMock{
		PushFunc: func(ctx context.Context, clientID string, mutations []*models.QueuedMutation, attachments []models.AttachmentMeta) (*service.PushResult, error) {
			require.Len(t, mutations, 1)
			assert.Equal(t, models.EntityType("centrifuge"), mutations[0].EntityType)
			return &service.PushResult{
				Rejected: []service.RejectedInfo{
					{MutationID: "m1", EntityType: "centrifuge", EntityID: "c-1", Reason: "unknown entity type"},
				},
			}, nil
		},
	}
	handler := NewSyncHandler(logger, svc)

	body, err := json.Marshal(api.PushRequest{
		ClientID: "bench-7",
		Changes: map[string][]api.Mutation{
			"centrifuge": {
				{ID: "m1", EntityType: "centrifuge", EntityID: "c-1", Operation: "create", Payload: json.RawMessage(`{}`)},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandlePush(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.PushResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, "unknown entity type", resp.Rejected[0].Reason)
}

func TestHealthHandler_Health(t *testing.T) {
	logger := setupTestLogger()
	handler := NewHealthHandler(logger, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.Health(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}
