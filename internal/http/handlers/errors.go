package handlers

import (
	"errors"

	"jeetech/internal/services"

	"github.com/gofiber/fiber/v2"
)

// apiError maps service errors onto JSON responses with sensible statuses.
func apiError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	var se *services.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
	case errors.Is(err, services.ErrDuplicateReview):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already reviewed"})
	case errors.As(err, &se):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(), "available": se.Available,
		})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(), "field": ve.Field,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
