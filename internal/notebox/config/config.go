// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "notebox/pkg/config"
	"notebox/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "notebox"

	EnvConfigPath = "NOTEBOX_CONFIG_PATH"

	LogConfigLoaded     = "Configuration loaded successfully"
	LogInsecureSecret   = "JWT secret key is the insecure default, set NOTEBOX_JWT_SECRET_KEY"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
	JWT        JWTConfig        `yaml:"jwt"`
	Storage    StorageConfig    `yaml:"storage"`
	Redis      RedisConfig      `yaml:"redis"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Revocation RevocationConfig `yaml:"revocation"`
}

// Load загружает конфигурацию из окружения и файла NOTEBOX_CONFIG_PATH, если он задан.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("environment", cfg.HTTP.Environment),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("revocation_driver", cfg.Revocation.Driver),
		zap.Duration("session_ttl", cfg.JWT.GetSessionTTL()))

	if cfg.JWT.IsInsecureDefault() {
		log.Warn(ctx, LogInsecureSecret)
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Revocation.Validate()
}

// NeedsRedis сообщает, используется ли Redis хотя бы одним компонентом.
func (c *Config) NeedsRedis() bool {
	return c.Storage.Driver == StorageDriverRedis || c.Revocation.Driver == RevocationDriverRedis
}
