package handlers

import (
	"errors"

	"roomkeeper/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a controller error into the HTTP response. Every
// domain error kind maps to a fixed status; ownership failures surface as
// not-found so session IDs cannot be probed by other users.
func respondError(c *fiber.Ctx, err error) error {
	var domainErr *models.DomainError
	if !errors.As(err, &domainErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "internal server error",
		})
	}

	status, detail := statusForKind(domainErr.Kind)
	if detail == "" {
		detail = domainErr.Detail
	}
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

func statusForKind(kind models.ErrorKind) (int, string) {
	switch kind {
	case models.ErrKindForbidden:
		return fiber.StatusForbidden, ""
	case models.ErrKindNotFound:
		return fiber.StatusNotFound, ""
	case models.ErrKindNotOwner:
		return fiber.StatusNotFound, models.ErrSessionNotFound.Detail
	default:
		return fiber.StatusBadRequest, ""
	}
}
