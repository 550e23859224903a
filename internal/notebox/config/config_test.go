package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebox/internal/notebox/config"
	"notebox/pkg/logger"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
		assert.True(t, cfg.HTTP.SecureCookies())
		assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
		assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
		assert.Equal(t, time.Hour, cfg.JWT.GetSessionTTL())
		assert.True(t, cfg.JWT.IsInsecureDefault())
		assert.Equal(t, config.StorageDriverFile, cfg.Storage.Driver)
		assert.Equal(t, config.RevocationDriverMemory, cfg.Revocation.Driver)
		assert.False(t, cfg.NeedsRedis())
	})

	t.Run("successfully loads config from environment", func(t *testing.T) {
		envVars := map[string]string{
			"NOTEBOX_HTTP_PORT":                "9090",
			"NOTEBOX_ENV":                      "development",
			"NOTEBOX_LOGGER_LEVEL":             "debug",
			"NOTEBOX_LOGGER_MODE":              "development",
			"NOTEBOX_GRACEFUL_SHUTDOWN_TIMEOUT": "10",
			"NOTEBOX_JWT_SECRET_KEY":           "prod-secret",
			"NOTEBOX_JWT_SESSION_TTL":          "30m",
			"NOTEBOX_STORAGE_DRIVER":           "postgres",
			"NOTEBOX_REVOCATION_DRIVER":        "redis",
			"NOTEBOX_REDIS_PORT":               "6380",
			"NOTEBOX_POSTGRES_HOST":            "db",
			"NOTEBOX_POSTGRES_MAX_CONNS":       "8",
		}
		for k, v := range envVars {
			t.Setenv(k, v)
		}

		cfg, err := config.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.HTTP.Port)
		assert.False(t, cfg.HTTP.SecureCookies())
		assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
		assert.Equal(t, 10*time.Second, cfg.Shutdown.GetTimeout())
		assert.False(t, cfg.JWT.IsInsecureDefault())
		assert.Equal(t, 30*time.Minute, cfg.JWT.GetSessionTTL())
		assert.True(t, cfg.NeedsRedis())
		assert.Equal(t, 6380, cfg.Redis.ClientConfig().Port)
		assert.Equal(t, "postgres://postgres:postgres@db:5432/notebox?sslmode=disable", cfg.Postgres.GetConnectionURL())
		assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=notebox sslmode=disable", cfg.Postgres.GetDSN())

		pool := cfg.Postgres.PoolOptions()
		assert.Equal(t, cfg.Postgres.GetDSN(), pool.DSN)
		assert.Equal(t, int32(1), pool.MinConns)
		assert.Equal(t, int32(8), pool.MaxConns)
		assert.Equal(t, 5*time.Minute, pool.MaxConnIdleTime)
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		t.Setenv("NOTEBOX_STORAGE_DRIVER", "mongo")

		cfg, err := config.Load(ctx)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, config.ErrUnknownDriver)
	})

	t.Run("rejects unknown revocation driver", func(t *testing.T) {
		t.Setenv("NOTEBOX_REVOCATION_DRIVER", "etcd")

		_, err := config.Load(ctx)
		assert.ErrorIs(t, err, config.ErrUnknownDriver)
	})

	t.Run("reads yaml file from NOTEBOX_CONFIG_PATH", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notebox.yml")
		content := "http:\n  port: 7070\nstorage:\n  driver: memory\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv(config.EnvConfigPath, path)

		cfg, err := config.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.HTTP.Port)
		assert.Equal(t, config.StorageDriverMemory, cfg.Storage.Driver)
	})

	t.Run("invalid session ttl falls back to one hour", func(t *testing.T) {
		c := config.JWTConfig{SessionTTL: "soon"}
		assert.Equal(t, time.Hour, c.GetSessionTTL())
	})
}
