package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/server/models"
)

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed %s", common.ErrValidation, name)
	}
	return id, nil
}

func (s *Server) handleListTickets(c *fiber.Ctx) error {
	list, err := s.tickets.List(c.UserContext())
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(list)
}

func (s *Server) handleGetTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	ticket, err := s.tickets.Get(c.UserContext(), id)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(ticket)
}

func (s *Server) handleCreateTicket(c *fiber.Ctx) error {
	var req ticketRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, fmt.Errorf("%w: malformed body", common.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return s.renderError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	ticket, err := s.tickets.Create(c.UserContext(), principal(c), req.ticket())
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

func (s *Server) handleReplaceTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	var req ticketRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, fmt.Errorf("%w: malformed body", common.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return s.renderError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	// owner comes from the body like every other field: omitted means null,
	// never the caller or the stored value
	updated, err := s.tickets.Replace(c.UserContext(), id, req.ticket())
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) handlePatchTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	var patch models.TicketPatch
	if err := c.BodyParser(&patch); err != nil {
		return s.renderError(c, fmt.Errorf("%w: malformed body", common.ErrValidation))
	}

	updated, err := s.tickets.Patch(c.UserContext(), id, patch)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(updated)
}
