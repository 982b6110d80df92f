package auth

import (
	"context"
	"testing"
	"time"

	"crosspost/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo backs the auth service with a fixed set of users.
type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users[username], nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	s.users[user.Username] = user
	return nil
}

func newTestService(t *testing.T) (*Service, *stubUserRepo) {
	t.Helper()
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[string]*models.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com", Password: hash, IsActive: true},
	}}
	return NewService("test-secret", repo), repo
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, VerifyPassword("Password123!", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "alice", "Password123!")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", err.(*models.AppError).Code)

	_, err = svc.Authenticate(ctx, "nobody", "Password123!")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", err.(*models.AppError).Code)
}

func TestIssueToken_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.IssueToken("alice", 30*time.Minute)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestIssueToken_SignerDefaultTTL(t *testing.T) {
	svc, _ := newTestService(t)

	tokenString, err := svc.IssueToken("alice", 0)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(signerDefaultTTL), exp.Time, 5*time.Second)
}

func TestCurrentUser_Expired(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.IssueToken("alice", time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.CurrentUser(ctx, token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", err.(*models.AppError).Code)
}

func TestCurrentUser_Failures(t *testing.T) {
	svc, _ := newTestService(t)
	other := NewService("other-secret", nil)
	ctx := context.Background()

	t.Run("Wrong signature", func(t *testing.T) {
		token, err := other.IssueToken("alice", time.Hour)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, token)
		assert.Error(t, err)
	})

	t.Run("Missing subject", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
		tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, tokenString)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", err.(*models.AppError).Code)
	})

	t.Run("Unknown user", func(t *testing.T) {
		token, err := svc.IssueToken("ghost", time.Hour)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, token)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", err.(*models.AppError).Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := svc.CurrentUser(ctx, "not-a-token")
		assert.Error(t, err)
	})
}
