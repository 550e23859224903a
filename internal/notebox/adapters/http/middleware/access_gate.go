package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebox/pkg/logger"
)

// Константы сессии и путей.
const (
	SessionCookie = "authToken"

	PathLogin     = "/"
	PathDashboard = "/dashboard"

	prefixAPI     = "/api/"
	prefixAPIAuth = "/api/auth"
	bearerPrefix  = "Bearer "

	LogGateRedirect = "access gate redirect"
)

// NewAccessGateMiddleware проверяет только наличие cookie сессии, не ее подпись.
//   - без cookie любой путь, кроме /api/auth* и /, перенаправляется на /;
//   - с cookie страница входа перенаправляется на /dashboard;
//   - для /api/ значение cookie передается дальше в заголовке Authorization.
func NewAccessGateMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		path := ctx.Path()
		token := ctx.Cookies(SessionCookie)

		if token == "" && !strings.HasPrefix(path, prefixAPIAuth) && path != PathLogin {
			logger.Log(requestCtx).Debug(requestCtx, LogGateRedirect,
				zap.String("path", path), zap.String("to", PathLogin))
			return ctx.Redirect().Status(fiber.StatusFound).To(PathLogin)
		}

		if token != "" && path == PathLogin {
			logger.Log(requestCtx).Debug(requestCtx, LogGateRedirect,
				zap.String("path", path), zap.String("to", PathDashboard))
			return ctx.Redirect().Status(fiber.StatusFound).To(PathDashboard)
		}

		if token != "" && strings.HasPrefix(path, prefixAPI) {
			ctx.Request().Header.Set(fiber.HeaderAuthorization, bearerPrefix+token)
		}

		return ctx.Next()
	}
}

// SessionToken возвращает токен сессии из заголовка Authorization или из cookie.
func SessionToken(ctx fiber.Ctx) string {
	if header := ctx.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)); token != "" {
			return token
		}
	}
	return ctx.Cookies(SessionCookie)
}
