package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	// No config file: defaults apply
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Timezone)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "chartdata:", cfg.Cache.Prefix)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	configContent := `
timezone: America/Los_Angeles
log:
  level: debug
  development: true
cache:
  backend: redis
  addr: cache:6379
  db: 2
  ttl: 90s
  prefix: "charts:"
database:
  driver: pgx
  url: postgres://localhost/charts
`
	require.NoError(t, os.WriteFile("chartdata.yml", []byte(configContent), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "America/Los_Angeles", cfg.Timezone)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Addr)
	assert.Equal(t, 2, cfg.Cache.DB)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "charts:", cfg.Cache.Prefix)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/charts", cfg.Database.URL)
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Europe/Berlin\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHARTDATA_TIMEZONE", "Asia/Tokyo")
	t.Setenv("CHARTDATA_CACHE_BACKEND", "memory")
	t.Setenv("CHARTDATA_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad backend", "cache:\n  backend: disk\n", "cache.backend"},
		{"redis without addr", "cache:\n  backend: redis\n  addr: \"\"\n", "cache.addr"},
		{"negative ttl", "cache:\n  ttl: -1s\n", "cache.ttl"},
		{"bad driver", "database:\n  driver: oracle\n", "database.driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			require.NoError(t, os.WriteFile("chartdata.yml", []byte(tt.content), 0644))

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadKeepsUnknownTimezone(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("chartdata.yml", []byte("timezone: Mars/Base\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Mars/Base", cfg.Timezone)

	t.Setenv("CHARTDATA_TIMEZONE", "tacos")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "tacos", cfg.Timezone)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{URL: "file:charts.db"}}

	t.Setenv("DATABASE_URL", "")
	assert.Equal(t, "file:charts.db", DatabaseURL(cfg))
	assert.Equal(t, "", DatabaseURL(nil))

	t.Setenv("DATABASE_URL", "postgres://env/charts")
	assert.Equal(t, "postgres://env/charts", DatabaseURL(cfg))
}
