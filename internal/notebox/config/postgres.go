package config

import (
	"fmt"
	"time"

	"notebox/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"NOTEBOX_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"NOTEBOX_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"NOTEBOX_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"NOTEBOX_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"NOTEBOX_POSTGRES_DB" env-default:"notebox"`
	MinConns       int32         `yaml:"min_conns" env:"NOTEBOX_POSTGRES_MIN_CONNS" env-default:"1"`
	MaxConns       int32         `yaml:"max_conns" env:"NOTEBOX_POSTGRES_MAX_CONNS" env-default:"5"`
	MaxConnIdle    time.Duration `yaml:"max_conn_idle" env:"NOTEBOX_POSTGRES_MAX_CONN_IDLE" env-default:"5m"`
	MigrationsPath string        `yaml:"migrations_path" env:"NOTEBOX_POSTGRES_MIGRATIONS_PATH" env-default:"file://migrations/notebox"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// PoolOptions собирает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.Options {
	return postgres.Options{
		DSN:             p.GetDSN(),
		MinConns:        p.MinConns,
		MaxConns:        p.MaxConns,
		MaxConnIdleTime: p.MaxConnIdle,
	}
}
