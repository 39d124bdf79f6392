package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/core/token"
)

// AuthService implements login, refresh and the password lifecycle.
type AuthService struct {
	users    ports.UserRepository
	tokens   *token.Issuer
	mailer   ports.Mailer
	resetTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires the auth service. resetTTL bounds the validity of
// password reset tickets; non-positive values fall back to 24 hours.
func NewAuthService(users ports.UserRepository, tokens *token.Issuer, mailer ports.Mailer, resetTTL time.Duration, logger zerolog.Logger) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetTTL: resetTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparison so the timing matches the wrong-password path.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000u6kSxpoV3XXlcuMYEJ6BjY3pOcIG9i2e"), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to record last login")
	}
	user.LastLogin = &now

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("user logged in")
	return pair, nil
}

// Refresh verifies a refresh token and mints a fresh access token. The
// refresh token is returned unchanged; there is no rotation or server-side
// revocation, so possession of a valid refresh token is sufficient.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	userID, err := claims.Subject()
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         user,
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password changed")
	return nil
}

// ForgotPassword stores a fresh reset ticket on the user and emails it.
// It always succeeds from the caller's point of view so that the endpoint
// cannot be used to probe which emails exist. A newer request overwrites any
// outstanding ticket (last write wins).
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	ticket, err := newResetTicket()
	if err != nil {
		return err
	}
	expires := s.now().UTC().Add(s.resetTTL)
	if err := s.users.SetResetTicket(ctx, user.ID, ticket, &expires); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FullName, ticket); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password reset email")
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password reset requested")
	return nil
}

// ResetPassword consumes a reset ticket: the stored ticket must match and be
// unexpired, the password is re-hashed, and both ticket fields are cleared so
// the ticket cannot be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, ticket, newPassword string) error {
	if ticket == "" || newPassword == "" {
		return domain.ErrResetTicketInvalid
	}

	user, err := s.users.FindByResetToken(ctx, ticket)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTicketInvalid
		}
		return err
	}
	if !user.HasValidResetTicket(ticket, s.now().UTC()) {
		return domain.ErrResetTicketInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := s.users.SetResetTicket(ctx, user.ID, "", nil); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password reset completed")
	return nil
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Role, user.TenantID)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         user,
	}, nil
}

// newResetTicket returns an opaque 32-hex-character ticket.
func newResetTicket() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
