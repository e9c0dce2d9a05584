package handlers

import (
	"carbon-footprint-system/middleware"
	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRewardRoutes(app *fiber.App, protect fiber.Handler, rewardService *services.RewardService) {
	secured := app.Group("/api/rewards", protect)

	secured.Get("/", func(c *fiber.Ctx) error {
		rewards, err := rewardService.Catalog()
		if err != nil {
			return fail(c, err)
		}
		return ok(c, rewards)
	})

	secured.Post("/redeem", func(c *fiber.Ctx) error {
		var req struct {
			RewardID string `json:"reward_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, services.ErrInvalidInput)
		}

		result, err := rewardService.Redeem(middleware.UserID(c), req.RewardID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"success":     true,
			"message":     "Successfully redeemed " + result.RewardName,
			"new_balance": result.NewBalance,
			"data":        result.Redemption,
		})
	})

	secured.Get("/history", func(c *fiber.Ctx) error {
		history, err := rewardService.History(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, history)
	})
}
