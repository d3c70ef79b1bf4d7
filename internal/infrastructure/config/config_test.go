package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/quizcore/internal/infrastructure/config"
)

func lookup(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{
		"SERVER_ADDRESS":   ":8080",
		"SHUTDOWN_TIMEOUT": "5s",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "quizcore.db", cfg.DBPath)
	assert.True(t, cfg.ResetContentOnStart)
	assert.Equal(t, "", cfg.CatalogPath)
	assert.Equal(t, 4, cfg.CatalogWorkers)
	assert.False(t, cfg.SyncPurgeHistory)
	assert.Equal(t, 10, cfg.StageSize)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{
		"SERVER_ADDRESS":         "127.0.0.1:9000",
		"SHUTDOWN_TIMEOUT":       "1m",
		"DB_PATH":                ":memory:",
		"RESET_CONTENT_ON_START": "false",
		"CATALOG_PATH":           "catalog/catalog.yaml",
		"CATALOG_WORKERS":        "8",
		"SYNC_PURGE_HISTORY":     "true",
		"STAGE_SIZE":             "5",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.False(t, cfg.ResetContentOnStart)
	assert.Equal(t, "catalog/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 8, cfg.CatalogWorkers)
	assert.True(t, cfg.SyncPurgeHistory)
	assert.Equal(t, 5, cfg.StageSize)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
}

func TestFromEnv_Errors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"SERVER_ADDRESS": ":8080", "SHUTDOWN_TIMEOUT": "5s"}
	}

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing address", "SERVER_ADDRESS", ""},
		{"missing timeout", "SHUTDOWN_TIMEOUT", ""},
		{"bad timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"bad bool", "SYNC_PURGE_HISTORY", "maybe"},
		{"zero stage size", "STAGE_SIZE", "0"},
		{"bad workers", "CATALOG_WORKERS", "four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := base()
			vars[tt.key] = tt.value
			_, err := config.FromEnv(lookup(vars))
			assert.Error(t, err)
		})
	}
}
