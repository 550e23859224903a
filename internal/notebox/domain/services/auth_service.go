// Package services содержит доменные ошибки и модели аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Session представляет выданную сессию.
type Session struct {
	Identity  string
	Token     string
	ExpiresAt time.Time
}
