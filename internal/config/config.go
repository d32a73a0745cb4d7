package config

import (
	"time"

	"github.com/spf13/viper"
)

// Environment variable prefix, e.g. LABSYNC_SERVER_ADDRESS.
const envPrefix = "labsync"

// ServerConfig holds the sync server settings.
type ServerConfig struct {
	Address      string
	DatabasePath string
	LogLevel     string
}

// ClientConfig holds the client CLI settings.
type ClientConfig struct {
	ServerURL    string
	DatabasePath string
	ClientID     string
	SyncInterval time.Duration
	BatchSize    int
	LogLevel     string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// LoadServer reads server configuration from the environment.
func LoadServer() *ServerConfig {
	v := newViper()
	v.SetDefault("server_address", ":8080")
	v.SetDefault("server_db", "labsync-server.db")
	v.SetDefault("log_level", "info")

	return &ServerConfig{
		Address:      v.GetString("server_address"),
		DatabasePath: v.GetString("server_db"),
		LogLevel:     v.GetString("log_level"),
	}
}

// LoadClient reads client configuration from the environment.
func LoadClient() *ClientConfig {
	v := newViper()
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("client_db", "labsync-client.db")
	v.SetDefault("client_id", "")
	v.SetDefault("sync_interval", 30*time.Second)
	v.SetDefault("batch_size", 50)
	v.SetDefault("log_level", "info")

	return &ClientConfig{
		ServerURL:    v.GetString("server_url"),
		DatabasePath: v.GetString("client_db"),
		ClientID:     v.GetString("client_id"),
		SyncInterval: v.GetDuration("sync_interval"),
		BatchSize:    v.GetInt("batch_size"),
		LogLevel:     v.GetString("log_level"),
	}
}
