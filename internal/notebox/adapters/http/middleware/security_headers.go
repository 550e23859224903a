package middleware

import "github.com/gofiber/fiber/v3"

// NewSecurityHeadersMiddleware добавляет заголовки безопасности ко всем ответам.
func NewSecurityHeadersMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		ctx.Set(fiber.HeaderXFrameOptions, "DENY")
		ctx.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		ctx.Set(fiber.HeaderReferrerPolicy, "strict-origin-when-cross-origin")
		return ctx.Next()
	}
}
