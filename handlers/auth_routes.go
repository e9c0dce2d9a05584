package handlers

import (
	"carbon-footprint-system/middleware"
	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	auth := app.Group("/api/auth")

	auth.Post("/register", func(c *fiber.Ctx) error {
		var req struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Password  string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, services.ErrInvalidInput)
		}

		result, err := authService.Register(req.FirstName, req.LastName, req.Email, req.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "User registered successfully",
			"token":   result.Token,
			"user":    result.User,
		})
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, services.ErrInvalidInput)
		}

		result, err := authService.Login(req.Email, req.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Login successful",
			"token":   result.Token,
			"user":    result.User,
		})
	})

	secured := app.Group("/api/user", middleware.Protected(authService))

	secured.Get("/profile", func(c *fiber.Ctx) error {
		profile, err := authService.Profile(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, profile)
	})
}
