package handlers

import (
	"errors"
	"log"

	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
)

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// fail maps service errors onto HTTP statuses. Unknown errors are logged and
// reported as a generic internal failure.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidActivityType),
		errors.Is(err, services.ErrInsufficientPoints):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrNotJoined),
		errors.Is(err, services.ErrEmailTaken):
		status = fiber.StatusConflict
		message = err.Error()
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
