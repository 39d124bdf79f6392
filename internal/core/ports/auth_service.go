package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	User         *domain.User
}

// AuthService implements the credential and token lifecycle.
type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair.
	// Unknown email and wrong password both fail with ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh mints a new access token from a valid refresh token. The
	// refresh token itself is returned unchanged.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	// ForgotPassword stores a reset ticket and emails it to the user. It
	// succeeds regardless of whether the email exists.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a reset ticket exactly once.
	ResetPassword(ctx context.Context, ticket, newPassword string) error
}
