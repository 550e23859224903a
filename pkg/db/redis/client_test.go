package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebox/pkg/db/redis"
)

func configFor(t *testing.T, addr string) *redis.Config {
	t.Helper()

	host, portStr, _ := strings.Cut(addr, ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg
}

func TestNewClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := miniredis.RunT(t)

		client, err := redis.NewClient(context.Background(), configFor(t, srv.Addr()))
		require.NoError(t, err)
		require.NotNil(t, client.RawClient())

		require.NoError(t, client.RawClient().Set(context.Background(), "k", "v", 0).Err())
		got, err := srv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)

		assert.NoError(t, client.Close())
	})

	t.Run("connection failure", func(t *testing.T) {
		cfg := redis.DefaultConfig()
		cfg.Host = "127.0.0.1"
		cfg.Port = 1
		cfg.DialTimeout = 100 * time.Millisecond

		client, err := redis.NewClient(context.Background(), cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}
