package server

import (
	"time"

	"crosspost/internal/middleware"
	"crosspost/internal/models"
	"crosspost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the payload for publishing a post.
type CreatePostRequest struct {
	Content      string     `json:"content"`
	Platforms    []string   `json:"platforms"`
	MediaURLs    []string   `json:"media_urls"`
	ScheduleDate *time.Time `json:"schedule_date"`
}

// CreatePost handles POST /posts/. The post is sent to the aggregator
// first; it is only persisted once the aggregator accepts it.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user := currentUser(c)

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}
	if len(req.Platforms) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At least one platform is required"))
	}

	post, err := s.postService.Publish(c.UserContext(), user.ID, service.PublishInput{
		Content:      req.Content,
		Platforms:    req.Platforms,
		MediaURLs:    req.MediaURLs,
		ScheduleDate: req.ScheduleDate,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post published",
		"post_id", post.ID, "status", post.Status, "platforms", post.Platforms)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts handles GET /posts/ and returns the user's posts newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	user := currentUser(c)

	posts, err := s.postService.List(c.UserContext(), user.ID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(posts)
}

// DeletePost handles DELETE /posts/:id. Posts that went out through the
// aggregator are removed there before the local record is deleted.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	user := currentUser(c)

	id, written := parseID(c, "id")
	if written {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), user.ID, id); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
