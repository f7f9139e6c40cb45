package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Vvitsh/ticketstore/internal/common"
)

// handleHealth reports liveness with an actual database round trip.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	var one int
	if err := s.db.QueryRowContext(c.UserContext(), "SELECT 1").Scan(&one); err != nil {
		return s.renderError(c, fmt.Errorf("db health check: %w", err))
	}
	return c.JSON(fiber.Map{"status": "OK"})
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, fmt.Errorf("%w: malformed body", common.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return s.renderError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	user, err := s.users.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return s.renderError(c, err)
	}

	s.logger.Info(c.UserContext(), "Registered", "username", user.Username)
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, fmt.Errorf("%w: malformed body", common.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return s.renderError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	user, err := s.users.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(user)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if err := s.users.Logout(c.UserContext(), principal(c)); err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "OK"})
}
