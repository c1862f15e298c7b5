package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg})
}

// mapServiceError translates sentinel errors from the service layer into
// HTTP statuses. Anything unrecognized is treated as a storage failure: the
// transaction has already been rolled back, so the request ends with 503.
func (s *Server) mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "task not found")
	case errors.Is(err, common.ErrValidation):
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return writeError(c, fiber.StatusConflict, "user with this email already exists")
	case errors.Is(err, common.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "invalid credentials")
	default:
		s.logger.Error(c.UserContext(), "request failed", "error", err.Error(), "path", c.Path())
		return writeError(c, fiber.StatusServiceUnavailable, "service temporarily unavailable")
	}
}
