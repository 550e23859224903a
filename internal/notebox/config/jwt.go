package config

import (
	"time"

	"notebox/internal/notebox/domain/services"
)

// JWTConfig содержит настройки токенов сессии и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"NOTEBOX_JWT_SECRET_KEY" env-default:"insecure-dev-secret-change-me"`
	SessionTTL string `yaml:"session_ttl" env:"NOTEBOX_JWT_SESSION_TTL" env-default:"1h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"NOTEBOX_BCRYPT_COST" env-default:"10"`
}

// GetSessionTTL возвращает время жизни сессии.
func (c *JWTConfig) GetSessionTTL() time.Duration {
	duration, err := time.ParseDuration(c.SessionTTL)
	if err != nil || duration <= 0 {
		return services.DefaultSessionTTL
	}
	return duration
}

// IsInsecureDefault сообщает, используется ли ключ подписи по умолчанию.
func (c *JWTConfig) IsInsecureDefault() bool {
	return c.SecretKey == services.InsecureDefaultSecret
}
