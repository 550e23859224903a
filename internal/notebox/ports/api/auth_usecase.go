// Package api определяет входные порты сервиса.
package api

import (
	"context"

	"notebox/internal/notebox/domain/services"
)

// AuthUseCase определяет операции регистрации, входа и выхода.
type AuthUseCase interface {
	Register(ctx context.Context, identity, password string) (*services.Session, error)

	Login(ctx context.Context, identity, password string) (*services.Session, error)

	Logout(ctx context.Context, token string) error

	Check(ctx context.Context, token string) (string, error)
}
