package handlers

import (
	"carbon-footprint-system/middleware"
	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, protect fiber.Handler, challengeService *services.ChallengeService) {
	secured := app.Group("/api/challenges", protect)

	secured.Get("/", func(c *fiber.Ctx) error {
		listing, err := challengeService.List(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, listing)
	})

	secured.Post("/join", func(c *fiber.Ctx) error {
		var req struct {
			ChallengeID string `json:"challenge_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, services.ErrInvalidInput)
		}

		membership, err := challengeService.Join(middleware.UserID(c), req.ChallengeID)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Joined challenge",
			"data":    membership,
		})
	})

	secured.Delete("/join/:id", func(c *fiber.Ctx) error {
		if err := challengeService.Leave(middleware.UserID(c), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Left challenge"})
	})
}
