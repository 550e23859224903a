package config

import "fmt"

// Драйверы хранилища отозванных токенов.
const (
	RevocationDriverMemory = "memory"
	RevocationDriverRedis  = "redis"
)

// RevocationConfig описывает хранилище отозванных токенов.
type RevocationConfig struct {
	Driver    string `yaml:"driver" env:"NOTEBOX_REVOCATION_DRIVER" env-default:"memory"`
	KeyPrefix string `yaml:"key_prefix" env:"NOTEBOX_REVOCATION_KEY_PREFIX" env-default:"notebox:revoked:"`
}

// Validate проверяет драйвер.
func (c *RevocationConfig) Validate() error {
	switch c.Driver {
	case RevocationDriverMemory, RevocationDriverRedis:
		return nil
	}
	return fmt.Errorf("revocation %w: %q", ErrUnknownDriver, c.Driver)
}
