package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebox/internal/notebox/adapters/revocation"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := revocation.NewMemoryStore(func() time.Time { return now })

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	t.Run("already expired token is not stored", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-old", now.Add(-time.Minute)))
		revoked, err := store.IsRevoked(ctx, "jti-old")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entry disappears after expiry", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := revocation.NewRedisStore(client, "")

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	assert.True(t, srv.Exists(revocation.DefaultKeyPrefix+"jti-1"))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	t.Run("key expires with token", func(t *testing.T) {
		srv.FastForward(2 * time.Hour)
		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("redis failure is reported", func(t *testing.T) {
		srv.Close()
		_, err := store.IsRevoked(ctx, "jti-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check revoked token")
	})
}
