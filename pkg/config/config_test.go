package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techinventory-api/pkg/config"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Inventory.DefaultReorderThreshold)
	assert.Equal(t, 30*time.Second, cfg.Redis.SnapshotTTL())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SNAPSHOT_CACHE_TTL_SECONDS", "10")
	t.Setenv("DEFAULT_REORDER_THRESHOLD", "8")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Redis.SnapshotTTL())
	assert.Equal(t, 8, cfg.Inventory.DefaultReorderThreshold)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DriverInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
