package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebox/pkg/retry"
)

var errDial = errors.New("dial tcp: connection refused")

func fastConfig(attempts int) retry.Config {
	return retry.Config{
		Attempts:       attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Factor:         2,
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		got, err := retry.Do(ctx, "redis", fastConfig(3), func(context.Context) (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		got, err := retry.Do(ctx, "postgres", fastConfig(5), func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errDial
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		calls := 0
		_, err := retry.Do(ctx, "redis", fastConfig(3), func(context.Context) (struct{}, error) {
			calls++
			return struct{}{}, errDial
		})
		assert.ErrorIs(t, err, errDial)
		assert.Equal(t, 3, calls)
	})

	t.Run("zero attempts means one", func(t *testing.T) {
		calls := 0
		_, err := retry.Do(ctx, "redis", retry.Config{}, func(context.Context) (int, error) {
			calls++
			return 0, errDial
		})
		assert.ErrorIs(t, err, errDial)
		assert.Equal(t, 1, calls)
	})

	t.Run("context error is not retried", func(t *testing.T) {
		calls := 0
		_, err := retry.Do(ctx, "redis", fastConfig(5), func(context.Context) (int, error) {
			calls++
			return 0, context.DeadlineExceeded
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cfg := retry.Config{Attempts: 5, InitialBackoff: time.Hour, Factor: 1}

		_, err := retry.Do(cancelCtx, "redis", cfg, func(context.Context) (int, error) {
			cancel()
			return 0, errDial
		})
		assert.ErrorIs(t, err, retry.ErrContextCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
