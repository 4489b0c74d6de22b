package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/services"
)

// serviceError converts a service error into the standard envelope with the
// matching HTTP status.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrInsufficientStock):
		status = fiber.StatusBadRequest
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	return c.Status(status).JSON(models.ErrorResponse(services.UserMessage(err), nil))
}
