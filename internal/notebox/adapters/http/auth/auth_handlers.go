// Package auth содержит HTTP обработчики входа, регистрации и выхода.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebox/internal/notebox/adapters/http/dto"
	"notebox/internal/notebox/adapters/http/middleware"
	"notebox/internal/notebox/app"
	"notebox/internal/notebox/domain/services"
	"notebox/internal/notebox/ports/api"
	"notebox/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogHandlerSignup = "auth handler: signup"
	LogHandlerLogin  = "auth handler: login"
	LogHandlerLogout = "auth handler: logout"
	LogHandlerCheck  = "auth handler: check"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgLoginSuccessful     = "Login successful"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgLoginFailed         = "An error occurred during login"
	MsgCredentialsRequired = "Email and password are required"
	MsgUserExists          = "User already exists"
	MsgUnauthorized        = "Unauthorized"
	MsgInvalidToken        = "Invalid token"
	MsgInternalServerError = "Internal Server Error"
)

// CookieConfig описывает cookie сессии.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	cookie      CookieConfig
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, cookie CookieConfig) *Handler {
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = services.DefaultSessionTTL
	}
	return &Handler{
		authUseCase: authUseCase,
		cookie:      cookie,
	}
}

func sendJSON(ctx fiber.Ctx, statusCode int, body any) error {
	if err := ctx.Status(statusCode).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Signup регистрирует пользователя и сразу устанавливает cookie сессии.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSignup)

	var req dto.CredentialsRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	if req.Identity() == "" || req.Password == "" {
		return sendJSON(ctx, http.StatusBadRequest, dto.ErrorResponse{Error: MsgCredentialsRequired})
	}

	session, err := h.authUseCase.Register(requestCtx, req.Identity(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			return sendJSON(ctx, http.StatusBadRequest, dto.ErrorResponse{Error: MsgUserExists})
		case errors.Is(err, app.ErrInvalidParams):
			return sendJSON(ctx, http.StatusBadRequest, dto.ErrorResponse{Error: MsgCredentialsRequired})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.ErrorResponse{Error: MsgInternalServerError})
	}

	h.setSessionCookie(ctx, session.Token)
	return sendJSON(ctx, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Login проверяет учетные данные и устанавливает cookie сессии.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.CredentialsRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.LoginResponse{Success: false, Message: ErrorInvalidRequest})
	}

	if req.Identity() == "" || req.Password == "" {
		return sendJSON(ctx, http.StatusBadRequest, dto.LoginResponse{Success: false, Message: MsgCredentialsRequired})
	}

	session, err := h.authUseCase.Login(requestCtx, req.Identity(), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return sendJSON(ctx, http.StatusUnauthorized, dto.LoginResponse{Success: false, Message: MsgInvalidCredentials})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.LoginResponse{Success: false, Message: MsgLoginFailed})
	}

	h.setSessionCookie(ctx, session.Token)
	return sendJSON(ctx, http.StatusOK, dto.LoginResponse{Success: true, Message: MsgLoginSuccessful})
}

// Logout отзывает сессию, если она есть, и очищает cookie. Всегда успешен.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	if err := h.authUseCase.Logout(requestCtx, middleware.SessionToken(ctx)); err != nil {
		log.Warn(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	}

	h.clearSessionCookie(ctx)
	return sendJSON(ctx, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Check сообщает, действительна ли текущая сессия.
func (h *Handler) Check(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCheck)

	token := middleware.SessionToken(ctx)
	if token == "" {
		return sendJSON(ctx, http.StatusUnauthorized, dto.ErrorResponse{Error: MsgUnauthorized})
	}

	if _, err := h.authUseCase.Check(requestCtx, token); err != nil {
		if errors.Is(err, app.ErrUnauthorized) {
			return sendJSON(ctx, http.StatusUnauthorized, dto.ErrorResponse{Error: MsgInvalidToken})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.ErrorResponse{Error: MsgInternalServerError})
	}

	return sendJSON(ctx, http.StatusOK, dto.CheckResponse{Authenticated: true})
}

func (h *Handler) setSessionCookie(ctx fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *Handler) clearSessionCookie(ctx fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
