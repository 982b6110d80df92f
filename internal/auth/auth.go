// Package auth implements password hashing and bearer token issuance/verification.
package auth

import (
	"context"
	"time"

	"crosspost/internal/models"
	"crosspost/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// signerDefaultTTL applies when a caller does not supply a token lifetime.
const signerDefaultTTL = 15 * time.Minute

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Service issues and verifies bearer tokens and resolves them to users.
type Service struct {
	secret []byte
	users  repository.UserRepository
}

// NewService returns an auth service signing tokens with the given symmetric secret.
func NewService(secret string, users repository.UserRepository) *Service {
	return &Service{secret: []byte(secret), users: users}
}

// IssueToken signs an HS256 token whose subject is the username.
// A non-positive ttl falls back to the signer default of 15 minutes.
func (s *Service) IssueToken(username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = signerDefaultTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Authenticate verifies a username/password pair and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(password, user.Password) {
		return nil, models.NewUnauthorizedError("Incorrect username or password")
	}
	return user, nil
}

// CurrentUser verifies the token's signature and expiry, extracts the subject,
// and looks up the matching user. Every failure mode maps to Unauthorized.
func (s *Service) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewUnauthorizedError("Invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, models.NewUnauthorizedError("Invalid token structure - missing subject")
	}

	user, err := s.users.GetByUsername(ctx, sub)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	return user, nil
}
