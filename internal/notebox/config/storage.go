package config

import (
	"errors"
	"fmt"
)

// Драйверы хранилища документа.
const (
	StorageDriverFile     = "file"
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

// ErrUnknownDriver возвращается для неподдерживаемого драйвера.
var ErrUnknownDriver = errors.New("unknown driver")

// StorageConfig описывает, где хранится документ.
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"NOTEBOX_STORAGE_DRIVER" env-default:"file"`
	FilePath   string `yaml:"file_path" env:"NOTEBOX_STORAGE_FILE_PATH" env-default:"data/db.json"`
	RedisKey   string `yaml:"redis_key" env:"NOTEBOX_STORAGE_REDIS_KEY" env-default:"notebox:document"`
	DocumentID string `yaml:"document_id" env:"NOTEBOX_STORAGE_DOCUMENT_ID" env-default:"default"`
}

// Validate проверяет драйвер хранилища.
func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverFile, StorageDriverMemory, StorageDriverRedis, StorageDriverPostgres:
		return nil
	}
	return fmt.Errorf("storage %w: %q", ErrUnknownDriver, c.Driver)
}
