package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Vvitsh/ticketstore/internal/common"
)

type errorResponse struct {
	Message string `json:"message"`
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrMissingCredential),
		errors.Is(err, common.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// renderError writes the {"message": ...} error shape. Internal causes are
// logged and replaced with a generic message so nothing about the failure
// leaks to the client.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	if status == fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(status).JSON(errorResponse{Message: common.ErrInternal.Error()})
	}
	return c.Status(status).JSON(errorResponse{Message: err.Error()})
}
