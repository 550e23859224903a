// Package services содержит адаптеры паролей и токенов сессии.
package services

import (
	"time"

	"notebox/internal/notebox/ports/repositories"
	"notebox/internal/notebox/ports/services"
)

// ServiceFactory создает сервисы, необходимые для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(
	jwtSecretKey string,
	sessionTTL time.Duration,
	bcryptCost int,
	revocations repositories.RevocationStore,
) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, sessionTTL, revocations),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
