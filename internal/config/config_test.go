package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServer_Defaults(t *testing.T) {
	cfg := LoadServer()

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "labsync-server.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadServer_Env(t *testing.T) {
	t.Setenv("LABSYNC_SERVER_ADDRESS", ":9090")
	t.Setenv("LABSYNC_SERVER_DB", "/var/lib/labsync/server.db")

	cfg := LoadServer()

	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "/var/lib/labsync/server.db", cfg.DatabasePath)
}

func TestLoadClient_Defaults(t *testing.T) {
	cfg := LoadClient()

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "labsync-client.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 50, cfg.BatchSize)
}

func TestLoadClient_Env(t *testing.T) {
	t.Setenv("LABSYNC_SERVER_URL", "http://lab-server:8080")
	t.Setenv("LABSYNC_SYNC_INTERVAL", "2m")
	t.Setenv("LABSYNC_CLIENT_ID", "bench-7")

	cfg := LoadClient()

	assert.Equal(t, "http://lab-server:8080", cfg.ServerURL)
	assert.Equal(t, 2*time.Minute, cfg.SyncInterval)
	assert.Equal(t, "bench-7", cfg.ClientID)
}
