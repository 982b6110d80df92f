package server

import (
	"fmt"

	"crosspost/internal/middleware"
	"crosspost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateSocialAccountRequest is the payload for connecting a platform account.
type CreateSocialAccountRequest struct {
	Platform   string `json:"platform"`
	APIKey     string `json:"api_key"`
	ProfileKey string `json:"profile_key"`
}

// CreateSocialAccount handles POST /social-accounts/.
func (s *Server) CreateSocialAccount(c *fiber.Ctx) error {
	user := currentUser(c)

	var req CreateSocialAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Platform == "" || req.APIKey == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Platform and api_key are required"))
	}

	ctx := c.UserContext()

	existing, err := s.accountRepo.GetActiveByPlatform(ctx, user.ID, req.Platform)
	if err != nil {
		return respondAppError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError(fmt.Sprintf(
				"An active account for %s already exists", req.Platform)))
	}

	account := &models.SocialAccount{
		UserID:     user.ID,
		Platform:   req.Platform,
		APIKey:     req.APIKey,
		ProfileKey: req.ProfileKey,
		Active:     true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return respondAppError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "social account connected",
		"account_id", account.ID, "platform", account.Platform)

	return c.Status(fiber.StatusCreated).JSON(account)
}

// ListSocialAccounts handles GET /social-accounts/.
func (s *Server) ListSocialAccounts(c *fiber.Ctx) error {
	user := currentUser(c)

	accounts, err := s.accountRepo.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(accounts)
}

// DeleteSocialAccount handles DELETE /social-accounts/:id.
func (s *Server) DeleteSocialAccount(c *fiber.Ctx) error {
	user := currentUser(c)

	id, written := parseID(c, "id")
	if written {
		return nil
	}

	if err := s.accountRepo.Delete(c.UserContext(), id, user.ID); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Social account deleted successfully"})
}
