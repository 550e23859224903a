package config

import (
	"fmt"
	"time"
)

// Окружения развертывания.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTEBOX_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTEBOX_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTEBOX_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTEBOX_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	Environment  string        `yaml:"environment" env:"NOTEBOX_ENV" env-default:"production"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecureCookies сообщает, нужно ли выставлять флаг Secure у cookie сессии.
// Флаг снимается только для локальной разработки.
func (c *HTTPConfig) SecureCookies() bool {
	return c.Environment != EnvDevelopment
}
