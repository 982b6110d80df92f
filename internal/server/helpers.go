package server

import (
	"errors"
	"strconv"

	"crosspost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUser returns the authenticated user stored by AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// parseID parses a numeric path parameter, writing a 400 response on failure.
// The bool result reports whether the response has already been written.
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+name+" parameter"))
		return 0, true
	}
	return uint(id), false
}

// respondAppError maps an application error to the right HTTP status.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	switch appErr.Code {
	case "UNAUTHORIZED":
		return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
	case "NOT_FOUND":
		return models.RespondWithError(c, fiber.StatusNotFound, appErr)
	case "VALIDATION_ERROR", "CONFLICT":
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	case "EXTERNAL_SERVICE_ERROR":
		// Mirror the upstream status so clients can distinguish aggregator
		// failures from our own.
		status := appErr.Status
		if status == 0 {
			status = fiber.StatusBadGateway
		}
		return models.RespondWithError(c, status, appErr)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, appErr)
	}
}
