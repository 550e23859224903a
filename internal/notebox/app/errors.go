// Package app реализует бизнес-логику аутентификации и работы с заметками.
package app

import (
	"context"
	"errors"
	"fmt"

	"notebox/internal/notebox/domain/services"
	svc "notebox/internal/notebox/ports/services"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("note not found")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrInvalidParams = errors.New("invalid parameters")
)

const errCtxValidatingToken = "validating session token"

// authenticate проверяет токен и возвращает идентификатор пользователя.
// Ошибки самого токена превращаются в ErrUnauthorized, сбои хранилища отзыва
// возвращаются как есть.
func authenticate(ctx context.Context, tokenSvc svc.TokenService, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	identity, err := tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		if isTokenError(err) {
			return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}
	return identity, nil
}

func isTokenError(err error) bool {
	return errors.Is(err, services.ErrInvalidJWTToken) ||
		errors.Is(err, services.ErrExpiredJWTToken) ||
		errors.Is(err, services.ErrRevokedJWTToken)
}
