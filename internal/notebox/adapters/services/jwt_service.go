package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notebox/internal/notebox/domain/services"
	"notebox/internal/notebox/ports/repositories"
	svc "notebox/internal/notebox/ports/services"
	"notebox/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateAccessToken = "GenerateAccessToken"
	methodValidateAccessToken = "ValidateAccessToken"
	methodRevokeAccessToken   = "RevokeAccessToken"
	msgGeneratingAccessToken  = "generating access token"
	msgValidatingToken        = "validating token"
	msgTokenGenerated         = "token generated successfully"
	msgTokenValidated         = "token validated successfully"
	msgInvalidToken           = "invalid token"
	msgTokenExpired           = "token has expired"
	msgTokenRevoked           = "token has been revoked"
	msgTokenRevokedOK         = "token revoked"
	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
	errCtxRevokingToken   = "revoking token"
	errCtxCheckingRevoked = "checking revocation"
)

// ErrInvalidAlgorithm представляет ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims адаптирует доменные claims к библиотеке JWT.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService на HS256 токенах.
type ServiceJWT struct {
	config      services.JWTConfig
	revocations repositories.RevocationStore
	now         func() time.Time
}

// Option настраивает ServiceJWT.
type Option func(*ServiceJWT)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceJWT) {
		s.now = now
	}
}

// NewJWT создает новый экземпляр сервиса JWT. revocations может быть nil,
// тогда отзыв токенов не поддерживается.
func NewJWT(secretKey string, ttl time.Duration, revocations repositories.RevocationStore, opts ...Option) svc.TokenService {
	if ttl <= 0 {
		ttl = services.DefaultSessionTTL
	}
	s := &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TTL:       ttl,
		},
		revocations: revocations,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.TokenID,
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		},
	}
}

func jwtToDomainClaims(claims Claims) services.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return services.JWTClaims{
		UserID:    claims.UserID,
		TokenID:   claims.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// GenerateAccessToken выпускает токен сессии для идентификатора.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, identity string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateAccessToken),
		zap.String("identity", identity),
	)
	log.Debug(ctx, msgGeneratingAccessToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TTL)

	jwtClaims := domainToJWTClaims(services.JWTClaims{
		UserID:    identity,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateAccessToken проверяет подпись, срок действия и отзыв токена,
// возвращает идентификатор пользователя.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))
	log.Debug(ctx, msgValidatingToken)

	claims, err := s.parse(ctx, tokenString)
	if err != nil {
		return "", err
	}

	if s.revocations != nil && claims.TokenID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			log.Error(ctx, errCtxCheckingRevoked, zap.Error(err))
			return "", fmt.Errorf("%s: %w", errCtxCheckingRevoked, err)
		}
		if revoked {
			log.Debug(ctx, msgTokenRevoked, zap.String("jti", claims.TokenID))
			return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrRevokedJWTToken)
		}
	}

	log.Debug(ctx, msgTokenValidated, zap.String("identity", claims.UserID))
	return claims.UserID, nil
}

// RevokeAccessToken помечает действующий токен отозванным до истечения его срока.
func (s *ServiceJWT) RevokeAccessToken(ctx context.Context, tokenString string) error {
	log := logger.Log(ctx).With(zap.String("method", methodRevokeAccessToken))

	if s.revocations == nil {
		return nil
	}

	claims, err := s.parse(ctx, tokenString)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}
	if claims.TokenID == "" {
		return fmt.Errorf("%s: %w: missing jti", errCtxRevokingToken, services.ErrInvalidJWTToken)
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		log.Error(ctx, errCtxRevokingToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Debug(ctx, msgTokenRevokedOK, zap.String("identity", claims.UserID), zap.String("jti", claims.TokenID))
	return nil
}

func (s *ServiceJWT) parse(ctx context.Context, tokenString string) (services.JWTClaims, error) {
	log := logger.Log(ctx)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return services.JWTClaims{}, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return services.JWTClaims{}, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return services.JWTClaims{}, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return services.JWTClaims{}, fmt.Errorf("%s: %w: empty user_id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	return jwtToDomainClaims(*claims), nil
}
