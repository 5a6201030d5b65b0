package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
)

// Error renders a domain error as a JSON error response. Classified errors
// map onto their HTTP status; everything else becomes an opaque 500.
func Error(c *fiber.Ctx, err error) error {
	var status int

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindBadRequest:
		status = fiber.StatusBadRequest
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
	case apperr.KindConflict:
		status = fiber.StatusConflict
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	message := err.Error()

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
