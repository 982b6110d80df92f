package server

import (
	"github.com/gofiber/fiber/v2"
)

// SupportedPlatforms lists the platforms the aggregator can publish to.
var SupportedPlatforms = []string{
	"bluesky",
	"facebook",
	"gmb",
	"instagram",
	"linkedin",
	"pinterest",
	"reddit",
	"snapchat",
	"telegram",
	"threads",
	"tiktok",
	"twitter",
	"youtube",
}

// GetPlatforms handles GET /platforms.
func (s *Server) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(SupportedPlatforms)
}
