package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notebox/internal/notebox/config"
	"notebox/internal/notebox/ports/repositories"
	"notebox/pkg/logger"
)

// ErrMissingBackend возвращается, если для выбранного драйвера не передано соединение.
var ErrMissingBackend = errors.New("storage backend is not configured")

// Backends - уже открытые соединения, которые может использовать хранилище.
type Backends struct {
	Redis    *redis.Client
	Postgres PgxPoolInterface
}

// NewStore создает хранилище документа по конфигурации.
func NewStore(ctx context.Context, cfg config.StorageConfig, backends Backends) (repositories.DocumentStore, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.StorageDriverFile:
		log.Info(ctx, "using file document store", zap.String("path", cfg.FilePath))
		return NewFileStore(cfg.FilePath), nil
	case config.StorageDriverMemory:
		log.Info(ctx, "using in-memory document store")
		return NewMemoryStore(nil), nil
	case config.StorageDriverRedis:
		if backends.Redis == nil {
			return nil, fmt.Errorf("%w: redis", ErrMissingBackend)
		}
		log.Info(ctx, "using redis document store", zap.String("key", cfg.RedisKey))
		return NewRedisStore(backends.Redis, cfg.RedisKey), nil
	case config.StorageDriverPostgres:
		if backends.Postgres == nil {
			return nil, fmt.Errorf("%w: postgres", ErrMissingBackend)
		}
		log.Info(ctx, "using postgres document store", zap.String("document_id", cfg.DocumentID))
		return NewPostgresStore(backends.Postgres, cfg.DocumentID), nil
	}
	return nil, fmt.Errorf("storage %w: %q", config.ErrUnknownDriver, cfg.Driver)
}
