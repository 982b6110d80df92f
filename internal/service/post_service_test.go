package service

import (
	"context"
	"testing"
	"time"

	"crosspost/internal/aggregator"
	"crosspost/internal/database"
	"crosspost/internal/models"
	"crosspost/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockPublisher is a mock of the Publisher interface.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, req aggregator.PublishRequest) (*aggregator.PublishResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aggregator.PublishResult), args.Error(1)
}

func (m *MockPublisher) Unpublish(ctx context.Context, apiKey, profileKey, externalID string) error {
	args := m.Called(ctx, apiKey, profileKey, externalID)
	return args.Error(0)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive across queries.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func setupService(t *testing.T) (*PostService, *MockPublisher, *gorm.DB) {
	db := setupTestDB(t)
	pub := new(MockPublisher)
	svc := NewPostService(repository.NewPostRepository(db), repository.NewSocialAccountRepository(db), pub)
	return svc, pub, db
}

func createAccount(t *testing.T, db *gorm.DB, userID uint, platform string, active bool) *models.SocialAccount {
	t.Helper()
	account := &models.SocialAccount{UserID: userID, Platform: platform, APIKey: "K1", Active: active}
	require.NoError(t, db.Create(account).Error)
	return account
}

func TestPostService_Publish(t *testing.T) {
	svc, pub, db := setupService(t)
	ctx := context.Background()
	createAccount(t, db, 1, "twitter", true)

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(req aggregator.PublishRequest) bool {
		return req.APIKey == "K1" && req.Content == "hello" && len(req.Platforms) == 1
	})).Return(&aggregator.PublishResult{ID: "ext-1", Raw: `{"id":"ext-1"}`}, nil)

	post, err := svc.Publish(ctx, 1, PublishInput{Content: "hello", Platforms: []string{"twitter"}})
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusPublished, post.Status)
	assert.Equal(t, "ext-1", post.ExternalID)
	assert.NotZero(t, post.ID)

	posts, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	pub.AssertExpectations(t)
}

func TestPostService_Publish_ScheduledStatus(t *testing.T) {
	svc, pub, db := setupService(t)
	createAccount(t, db, 1, "twitter", true)

	schedule := time.Now().Add(24 * time.Hour)
	pub.On("Publish", mock.Anything, mock.Anything).
		Return(&aggregator.PublishResult{ID: "ext-2", Raw: "{}"}, nil)

	post, err := svc.Publish(context.Background(), 1, PublishInput{
		Content:      "later",
		Platforms:    []string{"twitter"},
		ScheduleDate: &schedule,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusScheduled, post.Status)
}

func TestPostService_Publish_NoActiveAccount(t *testing.T) {
	svc, pub, db := setupService(t)
	// An inactive account does not satisfy the prerequisite.
	createAccount(t, db, 1, "twitter", false)

	_, err := svc.Publish(context.Background(), 1, PublishInput{Content: "hello", Platforms: []string{"twitter"}})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPostService_Publish_UpstreamFailureCreatesNothing(t *testing.T) {
	svc, pub, db := setupService(t)
	ctx := context.Background()
	createAccount(t, db, 1, "twitter", true)

	pub.On("Publish", mock.Anything, mock.Anything).
		Return(nil, &aggregator.StatusError{StatusCode: 502, Body: "upstream down"})

	_, err := svc.Publish(ctx, 1, PublishInput{Content: "hello", Platforms: []string{"twitter"}})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "EXTERNAL_SERVICE_ERROR", appErr.Code)
	assert.Equal(t, 502, appErr.Status)

	posts, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, posts, "no local record may exist after a failed publish")
}

func TestPostService_List_NewestFirst(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		post := &models.Post{
			UserID:    1,
			Content:   "post",
			Platforms: []string{"twitter"},
			Status:    models.PostStatusPublished,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		assert.True(t, posts[i].CreatedAt.Before(posts[i-1].CreatedAt),
			"posts must be strictly newest first")
	}
}

func TestPostService_Delete(t *testing.T) {
	newPost := func(t *testing.T, db *gorm.DB, externalID string) *models.Post {
		post := &models.Post{
			UserID:     1,
			Content:    "hello",
			Platforms:  []string{"twitter"},
			ExternalID: externalID,
			Status:     models.PostStatusPublished,
		}
		require.NoError(t, db.Create(post).Error)
		return post
	}

	t.Run("Removes local record after external delete", func(t *testing.T) {
		svc, pub, db := setupService(t)
		createAccount(t, db, 1, "twitter", true)
		post := newPost(t, db, "ext-1")

		pub.On("Unpublish", mock.Anything, "K1", "", "ext-1").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 1, post.ID))

		posts, err := svc.List(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, posts)
		pub.AssertExpectations(t)
	})

	t.Run("Tolerated not-found still removes local record", func(t *testing.T) {
		// The client maps upstream "not found" responses to a nil error,
		// so from the service's view this is the same as success.
		svc, pub, db := setupService(t)
		createAccount(t, db, 1, "twitter", true)
		post := newPost(t, db, "ext-gone")

		pub.On("Unpublish", mock.Anything, "K1", "", "ext-gone").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 1, post.ID))
	})

	t.Run("Upstream failure keeps local record", func(t *testing.T) {
		svc, pub, db := setupService(t)
		createAccount(t, db, 1, "twitter", true)
		post := newPost(t, db, "ext-1")

		pub.On("Unpublish", mock.Anything, "K1", "", "ext-1").
			Return(&aggregator.StatusError{StatusCode: 500, Body: "boom"})

		err := svc.Delete(context.Background(), 1, post.ID)
		require.Error(t, err)

		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", appErr.Code)
		assert.Equal(t, 500, appErr.Status)

		posts, listErr := svc.List(context.Background(), 1)
		require.NoError(t, listErr)
		assert.Len(t, posts, 1, "local record must survive a failed external delete")
	})

	t.Run("Post without external id skips the aggregator", func(t *testing.T) {
		svc, pub, db := setupService(t)
		createAccount(t, db, 1, "twitter", true)
		post := newPost(t, db, "")

		require.NoError(t, svc.Delete(context.Background(), 1, post.ID))
		pub.AssertNotCalled(t, "Unpublish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown post is not found", func(t *testing.T) {
		svc, _, db := setupService(t)
		createAccount(t, db, 1, "twitter", true)

		err := svc.Delete(context.Background(), 1, 999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
	})

	t.Run("No active account blocks the delete", func(t *testing.T) {
		svc, _, db := setupService(t)
		post := newPost(t, db, "ext-1")

		err := svc.Delete(context.Background(), 1, post.ID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
	})
}
