package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, int64(1), cfg.API.ServiceBatimentID)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := `
server:
  port: 8081
api:
  base_url: http://api.hopital.local/api
  timeout: 10s
session:
  backend: redis
  redis_url: redis://localhost:6379/0
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("DASHBOARD_SERVER_PORT", "9090")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://api.hopital.local/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("DASHBOARD_SESSION_BACKEND", "redis")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "RedisURL")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("DASHBOARD_SESSION_BACKEND", "memcached")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("bad api url", func(t *testing.T) {
		t.Setenv("DASHBOARD_API_BASE_URL", "not a url")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})
}
