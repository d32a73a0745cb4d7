package conflict

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop/labsync/internal/models"
)

var base = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func mutation(op models.Operation, createdAt time.Time) *models.QueuedMutation {
	return &models.QueuedMutation{
		ID:          "mut-1",
		EntityType:  models.EntityMethod,
		EntityID:    "m1",
		Operation:   op,
		BaseVersion: 2,
		CreatedAt:   createdAt,
		Payload:     json.RawMessage(`{"name":"client copy"}`),
	}
}

func record(deleted bool, updatedAt time.Time) *models.EntityRecord {
	return &models.EntityRecord{
		EntityType: models.EntityMethod,
		EntityID:   "m1",
		Version:    3,
		UpdatedAt:  updatedAt,
		Deleted:    deleted,
		Payload:    json.RawMessage(`{"name":"server copy"}`),
	}
}

func TestLastWriteWins(t *testing.T) {
	tests := []struct {
		name string
		m    *models.QueuedMutation
		rec  *models.EntityRecord
		want models.Resolution
	}{
		{
			name: "client wrote later",
			m:    mutation(models.OpUpdate, base.Add(time.Minute)),
			rec:  record(false, base),
			want: models.ResolutionClient,
		},
		{
			name: "server wrote later",
			m:    mutation(models.OpUpdate, base),
			rec:  record(false, base.Add(time.Minute)),
			want: models.ResolutionServer,
		},
		{
			name: "tie prefers server",
			m:    mutation(models.OpUpdate, base),
			rec:  record(false, base),
			want: models.ResolutionServer,
		},
		{
			name: "server tombstone always stands",
			m:    mutation(models.OpUpdate, base.Add(time.Hour)),
			rec:  record(true, base),
			want: models.ResolutionServer,
		},
		{
			name: "later client delete beats server update",
			m:    mutation(models.OpDelete, base.Add(time.Minute)),
			rec:  record(false, base),
			want: models.ResolutionClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastWriteWins(tt.m, tt.rec))
		})
	}
}

func TestResolver_Resolve_Versions(t *testing.T) {
	r := New(nil)

	out := r.Resolve(mutation(models.OpUpdate, base), record(false, base.Add(time.Minute)))

	assert.Equal(t, models.EntityMethod, out.EntityType)
	assert.Equal(t, "m1", out.EntityID)
	assert.Equal(t, int64(2), out.ClientVersion)
	assert.Equal(t, int64(3), out.ServerVersion)
	assert.Equal(t, models.ResolutionServer, out.Resolution)
	require.NotNil(t, out.ResolvedRecord)
	assert.Equal(t, json.RawMessage(`{"name":"server copy"}`), out.ResolvedRecord.Payload)
	assert.Equal(t, int64(3), out.ResolvedRecord.Version)
}

func TestResolver_Resolve_ClientWins(t *testing.T) {
	r := New(nil)

	m := mutation(models.OpUpdate, base.Add(time.Minute))
	out := r.Resolve(m, record(false, base))

	assert.Equal(t, models.ResolutionClient, out.Resolution)
	require.NotNil(t, out.ResolvedRecord)
	// The resubmitted mutation applies on top of the current server version
	assert.Equal(t, int64(4), out.ResolvedRecord.Version)
	assert.Equal(t, m.Payload, out.ResolvedRecord.Payload)
	assert.False(t, out.ResolvedRecord.Deleted)
}

func TestResolver_Resolve_ClientDeleteWins(t *testing.T) {
	r := New(nil)

	out := r.Resolve(mutation(models.OpDelete, base.Add(time.Minute)), record(false, base))

	assert.Equal(t, models.ResolutionClient, out.Resolution)
	require.NotNil(t, out.ResolvedRecord)
	assert.True(t, out.ResolvedRecord.Deleted)
}

func TestManualPolicy(t *testing.T) {
	r := New(Manual)

	// update/update goes to a human
	out := r.Resolve(mutation(models.OpUpdate, base.Add(time.Minute)), record(false, base))
	assert.Equal(t, models.ResolutionManual, out.Resolution)
	assert.Nil(t, out.ResolvedRecord)

	// delete conflicts still auto-resolve
	out = r.Resolve(mutation(models.OpDelete, base.Add(time.Minute)), record(false, base))
	assert.Equal(t, models.ResolutionClient, out.Resolution)
}
