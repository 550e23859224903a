package http

import "github.com/gofiber/fiber/v3"

// Страницы отрисовывает клиент; сервер отдает только точки входа,
// на которые перенаправляет middleware сессии.

func loginPage(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

func dashboardPage(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "dashboard"})
}
