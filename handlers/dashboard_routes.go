package handlers

import (
	"carbon-footprint-system/middleware"
	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, protect fiber.Handler, dashboardService *services.DashboardService, newsService *services.NewsService) {
	secured := app.Group("/api", protect)

	secured.Get("/dashboard", func(c *fiber.Ctx) error {
		dashboard, err := dashboardService.Build(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, dashboard)
	})

	secured.Get("/news", func(c *fiber.Ctx) error {
		items, cached, err := newsService.Fetch()
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "Failed to fetch news",
			})
		}
		return c.JSON(fiber.Map{"success": true, "data": items, "cached": cached})
	})
}
