package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer(t *testing.T) {
	t.Run("requires DB_DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		_, err := LoadServer()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("APP_ENV", "dev")

		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/shareit", cfg.DBDSN)
		assert.Equal(t, ":9090", cfg.HTTPAddr)
		assert.False(t, cfg.IsProduction)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.Equal(t, "shareit-server", cfg.AppName)
	})

	t.Run("production switches log format", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("APP_ENV", "prod")

		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction)
		assert.Equal(t, "json", cfg.Logging.Format)
	})
}

func TestLoadGateway(t *testing.T) {
	t.Run("requires server url", func(t *testing.T) {
		t.Setenv("SHAREIT_SERVER_URL", "")
		_, err := LoadGateway()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SHAREIT_SERVER_URL", "http://localhost:9090")

		cfg, err := LoadGateway()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 10*time.Second, cfg.ServerTimeout)
		assert.Equal(t, 100, cfg.RateLimit.Requests)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
		assert.Empty(t, cfg.Redis.Addr)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SHAREIT_SERVER_URL", "http://server:9090")
		t.Setenv("RATE_LIMIT_REQUESTS", "5")
		t.Setenv("RATE_LIMIT_WINDOW", "10s")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("REDIS_DB", "2")

		cfg, err := LoadGateway()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.RateLimit.Requests)
		assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Redis.DB)
	})

	t.Run("rejects bad numbers", func(t *testing.T) {
		t.Setenv("SHAREIT_SERVER_URL", "http://server:9090")
		t.Setenv("RATE_LIMIT_REQUESTS", "lots")
		_, err := LoadGateway()
		assert.Error(t, err)
	})

	t.Run("rejects zero window", func(t *testing.T) {
		t.Setenv("SHAREIT_SERVER_URL", "http://server:9090")
		t.Setenv("RATE_LIMIT_WINDOW", "0s")
		_, err := LoadGateway()
		assert.Error(t, err)
	})
}
