package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notebox/internal/notebox/ports/repositories"
	"notebox/pkg/logger"
)

const (
	logMethodRevoke    = "revoke"
	logMethodIsRevoked = "is_revoked"

	errFailedToRevoke = "failed to store revoked token in redis"
	errFailedToCheck  = "failed to check revoked token in redis"

	// DefaultKeyPrefix - префикс ключей отозванных токенов.
	DefaultKeyPrefix = "notebox:revoked:"
)

// RedisStore хранит отозванные токены в Redis; ключи истекают вместе с токеном.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore создает хранилище отозванных токенов в Redis.
func NewRedisStore(client *redis.Client, prefix string) repositories.RevocationStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// Revoke сохраняет ключ с TTL до момента until.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	log := logger.Log(ctx).With(zap.String("method", logMethodRevoke))

	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.prefix+tokenID, "1", ttl).Err(); err != nil {
		log.Error(ctx, errFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", errFailedToRevoke, err)
	}
	return nil
}

// IsRevoked проверяет наличие ключа.
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", logMethodIsRevoked))

	err := s.client.Get(ctx, s.prefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		log.Error(ctx, errFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errFailedToCheck, err)
	}
	return true, nil
}
