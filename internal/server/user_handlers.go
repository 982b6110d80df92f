package server

import (
	"github.com/gofiber/fiber/v2"
)

// Me handles GET /users/me/ and returns the authenticated user.
func (s *Server) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
