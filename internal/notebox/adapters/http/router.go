// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notebox/internal/notebox/adapters/http/auth"
	"notebox/internal/notebox/adapters/http/middleware"
	"notebox/internal/notebox/adapters/http/notes"
	"notebox/internal/notebox/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	noteUseCase api.NoteUseCase,
	cookie auth.CookieConfig,
) {
	authHandler := auth.NewHandler(authUseCase, cookie)
	notesHandler := notes.NewHandler(noteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewSecurityHeadersMiddleware())
	app.Use(middleware.NewAccessGateMiddleware())

	app.Get(middleware.PathLogin, loginPage)
	app.Get(middleware.PathDashboard, dashboardPage)

	apiGroup := app.Group("/api")

	// Auth routes (публичные).
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/check", authHandler.Check)

	// Маршруты заметок, токен проверяется в обработчиках.
	notesRoutes := apiGroup.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/categories", notesHandler.Categories)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
