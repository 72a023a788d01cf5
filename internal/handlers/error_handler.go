package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"estoque/internal/apperrors"
)

// ErrorHandler is the single boundary converting application errors into
// HTTP responses. Handlers and services return errors; nothing below this
// point writes a status code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Erro de validação",
			"details": verr,
		})
	}

	var nfErr *apperrors.NotFoundError
	if errors.As(err, &nfErr) {
		return c.Status(nfErr.Status).JSON(fiber.Map{
			"error": nfErr.Message,
		})
	}

	// Framework-level errors (unknown route, method not allowed) keep
	// their own status.
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Erro interno do servidor",
	})
}
