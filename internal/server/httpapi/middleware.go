package httpapi

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/server/models"
)

const principalKey = "principal"

// authGuard admits only requests carrying a bearer token that is both
// stored for some user and cryptographically valid. A request with no
// usable Authorization header fails with 400 before any lookup; a present
// but unacceptable token fails with 401.
func (s *Server) authGuard(c *fiber.Ctx) error {
	header := c.Get(common.AuthHeaderName)
	if header == "" {
		return s.renderError(c, fmt.Errorf("%w: no authorization header", common.ErrMissingCredential))
	}

	token, found := strings.CutPrefix(header, common.BearerPrefix)
	if !found || token == "" {
		return s.renderError(c, fmt.Errorf("%w: malformed authorization header", common.ErrMissingCredential))
	}

	user, err := s.users.Authenticate(c.UserContext(), token)
	if err != nil {
		return s.renderError(c, err)
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// principal returns the authenticated user set by authGuard. Only valid on
// guarded routes.
func principal(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(principalKey).(*models.User)
	return user
}
