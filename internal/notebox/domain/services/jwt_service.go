package services

import (
	"errors"
	"time"
)

// Ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrRevokedJWTToken    = errors.New("JWT token has been revoked")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// InsecureDefaultSecret - ключ подписи по умолчанию. Только для локальной разработки.
const InsecureDefaultSecret = "insecure-dev-secret-change-me" //nolint:gosec

// DefaultSessionTTL - время жизни сессии.
const DefaultSessionTTL = time.Hour

// JWTConfig содержит настройки JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TTL       time.Duration
}

// JWTClaims определяет содержимое токена сессии.
type JWTClaims struct {
	UserID    string    `json:"user_id"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
