package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/repositories"
	"notebox/pkg/logger"
)

const (
	errFailedToGet = "failed to get document from redis"
	errFailedToSet = "failed to set document in redis"
)

// RedisStore хранит документ в одном ключе Redis без срока жизни.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore создает хранилище документа в Redis.
func NewRedisStore(client *redis.Client, key string) repositories.DocumentStore {
	return &RedisStore{client: client, key: key}
}

// Load читает документ по ключу.
func (s *RedisStore) Load(ctx context.Context) (*entities.Document, error) {
	log := logger.Log(ctx).With(zap.String("store", "redis"), zap.String("key", s.key))

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.NewDocument(), nil
		}
		log.Error(ctx, errFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedToGet, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		log.Error(ctx, errFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedToGet, err)
	}
	return doc, nil
}

// Save перезаписывает ключ документа.
func (s *RedisStore) Save(ctx context.Context, doc *entities.Document) error {
	log := logger.Log(ctx).With(zap.String("store", "redis"), zap.String("key", s.key))

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		log.Error(ctx, errFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", errFailedToSet, err)
	}
	return nil
}
