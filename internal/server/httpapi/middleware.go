package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/gofiber/fiber/v2"
)

// principalKey is the fiber.Ctx locals key holding the authenticated subject.
const principalKey = "principal"

// requireAuth extracts the bearer token, verifies it and stores the subject
// in the request locals. Every failure mode answers with the same generic
// 401; the specific reason goes to the log only.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		s.logger.Warn(c.UserContext(), "missing bearer token", "path", c.Path())
		return writeError(c, fiber.StatusUnauthorized, "missing or invalid token")
	}

	principal, err := auth.Authenticate(raw, s.jwtSecret)
	if err != nil {
		s.logger.Warn(c.UserContext(), "token rejected", "reason", err.Error(), "path", c.Path())
		return writeError(c, fiber.StatusUnauthorized, "missing or invalid token")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// requireOwner compares the path-declared owner with the authenticated
// subject. A mismatch is a hard 403; there is no role that bypasses it.
func (s *Server) requireOwner(c *fiber.Ctx) error {
	principal, _ := c.Locals(principalKey).(string)
	owner := c.Params("owner")

	if owner == "" || owner != principal {
		s.logger.Warn(c.UserContext(), "owner mismatch",
			"path_owner", owner, "principal", principal)
		return writeError(c, fiber.StatusForbidden, "access forbidden")
	}

	return c.Next()
}
