package handlers

import (
	"time"

	"carbon-footprint-system/middleware"
	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupActivityRoutes(app *fiber.App, protect fiber.Handler, activityService *services.ActivityService) {
	secured := app.Group("/api", protect)

	secured.Get("/factors", func(c *fiber.Ctx) error {
		factors, err := activityService.Factors()
		if err != nil {
			return fail(c, err)
		}
		return ok(c, factors)
	})

	secured.Post("/activities", func(c *fiber.Ctx) error {
		var req struct {
			FactorID         string  `json:"factor_id"`
			ConsumptionValue float64 `json:"consumption_value"`
			ActivityDate     string  `json:"activity_date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, services.ErrInvalidInput)
		}

		date, err := time.Parse("2006-01-02", req.ActivityDate)
		if err != nil {
			return fail(c, services.ErrInvalidInput)
		}

		activity, score, err := activityService.Record(middleware.UserID(c), req.FactorID, req.ConsumptionValue, date)
		if err != nil {
			return fail(c, err)
		}

		resp := fiber.Map{
			"activity_id":         activity.ID,
			"calculated_emission": activity.CalculatedEmission,
			"points_earned":       score.Points,
		}
		if score.Level != "" {
			resp["feedback"] = fiber.Map{"level": score.Level, "tips": score.Tips}
		}
		return ok(c, resp)
	})

	secured.Get("/activities", func(c *fiber.Ctx) error {
		activities, err := activityService.History(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, activities)
	})
}
