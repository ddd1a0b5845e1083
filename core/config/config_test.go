package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "apply", cfg.Server.Mode)
	assert.Equal(t, 16, cfg.Server.BodyLimitMB)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.False(t, cfg.Database.Tracing)
	assert.Equal(t, "database", cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "specy-blocks", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "rule", cfg.Indexer.RuleEvent)
	assert.Equal(t, "transfer", cfg.Indexer.TransferEvent)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("STORE_REDIS_DB", "3")
	t.Setenv("INDEXER_TRANSFER_EVENT", "coin_spent")
	t.Setenv("DATABASE_TRACING", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, "coin_spent", cfg.Indexer.TransferEvent)
	assert.True(t, cfg.Database.Tracing)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nDATABASE_DRIVER=sqlite\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("DATABASE_DRIVER")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	bad := *cfg
	bad.Server.Mode = "replay"
	assert.ErrorContains(t, bad.Validate(), "server.mode")

	bad = *cfg
	bad.Store.Backend = "etcd"
	assert.ErrorContains(t, bad.Validate(), "store.backend")

	bad = *cfg
	bad.Database.Driver = "mssql"
	assert.ErrorContains(t, bad.Validate(), "database.driver")

	// The driver does not matter for other backends.
	bad.Store.Backend = "memory"
	assert.NoError(t, bad.Validate())

	bad = *cfg
	bad.Indexer.BindingEvent = bad.Indexer.RuleEvent
	assert.Error(t, bad.Validate())
}
