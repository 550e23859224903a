package services

import (
	"context"
	"time"
)

// TokenService выпускает, проверяет и отзывает токены сессии.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, identity string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (string, error)

	RevokeAccessToken(ctx context.Context, token string) error
}
