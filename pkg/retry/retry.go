// Package retry повторяет установку соединений с внешними хранилищами при старте.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notebox/pkg/logger"
)

// Config содержит настройки повторов.
type Config struct {
	// Attempts - число попыток, включая первую.
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64
}

// DefaultConfig возвращает настройки для подключения к Redis и Postgres при старте.
func DefaultConfig() Config {
	return Config{
		Attempts:       5,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     3 * time.Second,
		Factor:         2.0,
	}
}

// ErrContextCanceled возвращается, если контекст отменен во время ожидания.
var ErrContextCanceled = errors.New("context was canceled during retry")

const (
	logRetryAttempt     = "connection attempt failed, retrying"
	logRetrySuccess     = "connection established after retry"
	logRetryMaxAttempts = "connection attempts exhausted"
)

// Do выполняет op, пока она не вернет nil, не кончатся попытки или не отменится ctx.
// Отмена контекста не повторяется.
func Do[T any](ctx context.Context, name string, cfg Config, op func(ctx context.Context) (T, error)) (T, error) {
	log := logger.Log(ctx).With(zap.String("target", name))

	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	backoff := cfg.InitialBackoff

	var (
		result T
		err    error
	)
	for attempt := 1; ; attempt++ {
		result, err = op(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, logRetrySuccess, zap.Int("attempts", attempt))
			}
			return result, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return result, err
		}

		if attempt >= cfg.Attempts {
			log.Warn(ctx, logRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return result, err
		}

		log.Info(ctx, logRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return result, fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * cfg.Factor)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
}
