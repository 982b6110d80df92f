package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"crosspost/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func postRows(ids ...uint) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "content", "platforms", "media_urls", "schedule_date", "external_id", "status", "response", "created_at", "updated_at"})
	base := time.Now()
	for i, id := range ids {
		rows.AddRow(id, 1, "hello", `["twitter"]`, nil, nil, "ext-1", models.PostStatusPublished, "{}", base.Add(-time.Duration(i)*time.Minute), base)
	}
	return rows
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{
		UserID:    1,
		Content:   "hello",
		Platforms: []string{"twitter"},
		Status:    models.PostStatusPublished,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByUser_OrdersNewestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(1).
		WillReturnRows(postRows(3, 2, 1))

	posts, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, uint(3), posts[0].ID)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt),
			"posts must be ordered by descending creation time")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Owned post", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1 AND user_id = $2`)).
			WithArgs(3, 1, 1).
			WillReturnRows(postRows(3))

		post, err := repo.GetByID(ctx, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"twitter"}, post.Platforms)
		assert.Equal(t, "ext-1", post.ExternalID)
	})

	t.Run("Unowned post is not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1 AND user_id = $2`)).
			WithArgs(3, 9, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByID(ctx, 3, 9)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1 AND user_id = $2`)).
		WithArgs(3, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(ctx, 3, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
