// Package service contains business logic that spans repositories and the
// aggregator client.
package service

import (
	"context"
	"errors"
	"time"

	"crosspost/internal/aggregator"
	"crosspost/internal/models"
	"crosspost/internal/repository"
)

// Publisher is the aggregator surface the post service depends on.
type Publisher interface {
	Publish(ctx context.Context, req aggregator.PublishRequest) (*aggregator.PublishResult, error)
	Unpublish(ctx context.Context, apiKey, profileKey, externalID string) error
}

// PublishInput describes a post creation request.
type PublishInput struct {
	Content      string
	Platforms    []string
	MediaURLs    []string
	ScheduleDate *time.Time
}

// PostService orchestrates publishing: account prerequisite checks, the
// external aggregator call, and local persistence.
type PostService struct {
	posts      repository.PostRepository
	accounts   repository.SocialAccountRepository
	aggregator Publisher
}

// NewPostService creates a PostService.
func NewPostService(posts repository.PostRepository, accounts repository.SocialAccountRepository, agg Publisher) *PostService {
	return &PostService{posts: posts, accounts: accounts, aggregator: agg}
}

// Publish sends the post through the aggregator using the caller's first
// active social account, then persists the local record. The local record is
// only created after the external call succeeds.
func (s *PostService) Publish(ctx context.Context, userID uint, in PublishInput) (*models.Post, error) {
	account, err := s.accounts.FirstActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, models.NewValidationError("No active social media account found. Please connect your account first.")
	}

	result, err := s.aggregator.Publish(ctx, aggregator.PublishRequest{
		APIKey:       account.APIKey,
		ProfileKey:   account.ProfileKey,
		Content:      in.Content,
		Platforms:    in.Platforms,
		MediaURLs:    in.MediaURLs,
		ScheduleDate: in.ScheduleDate,
	})
	if err != nil {
		return nil, mapAggregatorError(err)
	}

	status := models.PostStatusPublished
	if in.ScheduleDate != nil {
		status = models.PostStatusScheduled
	}

	post := &models.Post{
		UserID:       userID,
		Content:      in.Content,
		Platforms:    in.Platforms,
		MediaURLs:    in.MediaURLs,
		ScheduleDate: in.ScheduleDate,
		ExternalID:   result.ID,
		Status:       status,
		Response:     result.Raw,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. If the post was published externally, the aggregator
// delete runs first; only upstream failures that do not indicate "not found"
// keep the local record alive.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	account, err := s.accounts.FirstActive(ctx, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return models.NewValidationError("No active social media account found")
	}

	if post.ExternalID != "" {
		if err := s.aggregator.Unpublish(ctx, account.APIKey, account.ProfileKey, post.ExternalID); err != nil {
			return mapAggregatorError(err)
		}
	}

	return s.posts.Delete(ctx, postID, userID)
}

// List returns the user's posts, newest first.
func (s *PostService) List(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// mapAggregatorError converts client errors into the application taxonomy,
// preserving the upstream status and body for non-2xx responses.
func mapAggregatorError(err error) error {
	var statusErr *aggregator.StatusError
	if errors.As(err, &statusErr) {
		return models.NewExternalServiceError(statusErr.StatusCode, statusErr.Body)
	}
	return models.NewInternalError(err)
}
