package helpers

import (
	"errors"
	"log"

	"mitrabus/services"

	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// ServiceError maps the service error kinds onto HTTP statuses. Anything
// unrecognized is a storage failure: the unit of work already rolled back,
// so the caller may safely retry.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrCannotCancel),
		errors.Is(err, services.ErrNotPaid):
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return JSONError(c, fiber.StatusForbidden, err.Error())
	default:
		log.Printf("[HTTP] storage failure: %v", err)
		return JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
