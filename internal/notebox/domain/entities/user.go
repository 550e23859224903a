// Package entities содержит доменные сущности сервиса заметок.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyIdentity = errors.New("identity cannot be empty")
	ErrEmptySecret   = errors.New("password cannot be empty")
	ErrUserNotFound  = errors.New("user not found")
)

// User представляет учетную запись. Идентификатор (email или имя пользователя)
// уникален в пределах документа и сравнивается без нормализации.
type User struct {
	Identity     string    `json:"identity"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
