package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/domain/services"
	"notebox/internal/notebox/ports/api"
	"notebox/internal/notebox/ports/repositories"
	svc "notebox/internal/notebox/ports/services"
	"notebox/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"
	methodLogout   = "Logout"
	methodCheck    = "Check"

	msgStartRegistration   = "starting user registration"
	msgEmptyIdentity       = "empty identity provided"
	msgEmptyPassword       = "empty password provided"
	msgIdentityExists      = "user with this identity already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent identity"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgProcessingLogout    = "processing logout request"
	msgLogoutWithoutToken  = "logout without session token"
	msgRevokeFailed        = "session token was not revoked"
	msgUserLoggedOut       = "user logged out successfully"

	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate session token"

	errCtxValidatingIdentity = "validating identity"
	errCtxValidatingPassword = "validating password"
	errCtxIdentityRegistered = "identity already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating session token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase поверх документа.
type AuthUseCaseImpl struct {
	docs        repositories.DocumentGateway
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	now         func() time.Time
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	docs repositories.DocumentGateway,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		docs:        docs,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		now:         time.Now,
	}
}

// Register создает пользователя с пустым списком заметок и сразу выдает сессию.
func (a *AuthUseCaseImpl) Register(ctx context.Context, identity, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("identity", identity))
	log.Debug(ctx, msgStartRegistration)

	if identity == "" {
		log.Debug(ctx, msgEmptyIdentity)
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingIdentity, ErrInvalidParams, entities.ErrEmptyIdentity)
	}
	if password == "" {
		log.Debug(ctx, msgEmptyPassword)
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingPassword, ErrInvalidParams, entities.ErrEmptySecret)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	err = a.docs.Update(ctx, func(doc *entities.Document) error {
		if doc.HasUser(identity) {
			return services.ErrUserExists
		}
		doc.AddUser(entities.User{
			Identity:     identity,
			PasswordHash: hashedPassword,
			CreatedAt:    a.now().UTC(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			log.Debug(ctx, msgIdentityExists)
			return nil, fmt.Errorf("%s: %w", errCtxIdentityRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	session, err := a.issue(ctx, identity)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserRegistered)
	return session, nil
}

// Login проверяет пароль и выдает сессию. Идентификатор сравнивается точно.
func (a *AuthUseCaseImpl) Login(ctx context.Context, identity, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("identity", identity))
	log.Debug(ctx, msgLoginAttempt)

	var (
		user  entities.User
		found bool
	)
	err := a.docs.View(ctx, func(doc *entities.Document) error {
		user, found = doc.Users[identity]
		return nil
	})
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if !found || identity == "" {
		log.Debug(ctx, msgLoginNonExistent)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	ok, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if errors.Is(err, services.ErrInvalidPassword) {
		ok, err = false, nil
	}
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	session, err := a.issue(ctx, identity)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserLoggedIn)
	return session, nil
}

// Logout отзывает токен, если он действителен. Ошибки только логируются.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	if token == "" {
		log.Debug(ctx, msgLogoutWithoutToken)
		return nil
	}

	if err := a.tokenSvc.RevokeAccessToken(ctx, token); err != nil {
		log.Warn(ctx, msgRevokeFailed, zap.Error(err))
		return nil
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// Check возвращает идентификатор владельца действующего токена.
func (a *AuthUseCaseImpl) Check(ctx context.Context, token string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCheck))

	identity, err := authenticate(ctx, a.tokenSvc, token)
	if err != nil {
		log.Debug(ctx, errCtxValidatingToken, zap.Error(err))
		return "", err
	}
	return identity, nil
}

func (a *AuthUseCaseImpl) issue(ctx context.Context, identity string) (*services.Session, error) {
	token, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, identity)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrGenerateToken, zap.String("identity", identity), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	return &services.Session{
		Identity:  identity,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
