package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/core/token"
)

type stubUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, tok string) (*domain.User, error) {
	if tok == "" {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ResetToken == tok {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(context.Context, ports.UserFilter, ports.ListParams) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return u, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *stubUserRepo) SetResetTicket(_ context.Context, id uuid.UUID, tok string, expires *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = tok
	u.ResetTokenExpires = expires
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type stubMailer struct {
	resetsSent []string
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, _, _ string) error {
	m.resetsSent = append(m.resetsSent, to)
	return nil
}

func (m *stubMailer) SendNewAccount(context.Context, string, string) error { return nil }

func seedUser(t *testing.T, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	tenantID := uuid.New()
	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         role,
		TenantID:     &tenantID,
		IsActive:     active,
	}
}

func newAuthService(repo *stubUserRepo) (*AuthService, *stubMailer) {
	iss := token.NewIssuer("secret", 30*time.Minute, 7*24*time.Hour)
	mailer := &stubMailer{}
	return NewAuthService(repo, iss, mailer, 24*time.Hour, zerolog.Nop()), mailer
}

func TestAuthService_Login_Success(t *testing.T) {
	user := seedUser(t, "carol@example.com", "s3cret", domain.RoleTenantAdmin, true)
	repo := newStubUserRepo(user)
	svc, _ := newAuthService(repo)

	pair, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if pair.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", pair.TokenType)
	}
	if pair.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Fatalf("expires_in = %d, want %d", pair.ExpiresIn, int64((30*time.Minute).Seconds()))
	}
	if pair.User == nil || pair.User.LastLogin == nil {
		t.Fatalf("expected last_login to be set")
	}
	if stored := repo.users[user.ID]; stored.LastLogin == nil {
		t.Fatalf("last_login not persisted")
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	user := seedUser(t, "dave@example.com", "goodpass", domain.RoleStaff, true)
	svc, _ := newAuthService(newStubUserRepo(user))

	// Wrong password and unknown email must be indistinguishable.
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	user := seedUser(t, "eve@example.com", "pass", domain.RoleStaff, false)
	svc, _ := newAuthService(newStubUserRepo(user))

	if _, err := svc.Login(context.Background(), "eve@example.com", "pass"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("got %v, want ErrUserInactive", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	user := seedUser(t, "frank@example.com", "pass", domain.RoleHotelAdmin, true)
	svc, _ := newAuthService(newStubUserRepo(user))

	pair, err := svc.Login(context.Background(), "frank@example.com", "pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatalf("expected new access token")
	}
	if refreshed.RefreshToken != pair.RefreshToken {
		t.Fatalf("refresh token must be returned unchanged")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	user := seedUser(t, "gina@example.com", "pass", domain.RoleStaff, true)
	svc, _ := newAuthService(newStubUserRepo(user))

	pair, err := svc.Login(context.Background(), "gina@example.com", "pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("access token used as refresh: got %v, want ErrUnauthorized", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmailSucceeds(t *testing.T) {
	svc, mailer := newAuthService(newStubUserRepo())

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("forgot password for unknown email must succeed, got %v", err)
	}
	if len(mailer.resetsSent) != 0 {
		t.Fatalf("no email should be sent for unknown address")
	}
}

func TestAuthService_ResetPassword_LastTicketWins(t *testing.T) {
	user := seedUser(t, "hana@example.com", "oldpass", domain.RoleStaff, true)
	repo := newStubUserRepo(user)
	svc, mailer := newAuthService(repo)

	ctx := context.Background()
	if err := svc.ForgotPassword(ctx, "hana@example.com"); err != nil {
		t.Fatalf("first forgot: %v", err)
	}
	firstTicket := repo.users[user.ID].ResetToken

	if err := svc.ForgotPassword(ctx, "hana@example.com"); err != nil {
		t.Fatalf("second forgot: %v", err)
	}
	secondTicket := repo.users[user.ID].ResetToken

	if firstTicket == secondTicket {
		t.Fatalf("expected distinct tickets")
	}
	if len(mailer.resetsSent) != 2 {
		t.Fatalf("expected 2 reset emails, got %d", len(mailer.resetsSent))
	}

	// The superseded ticket no longer matches the stored value.
	if err := svc.ResetPassword(ctx, firstTicket, "newpass1"); !errors.Is(err, domain.ErrResetTicketInvalid) {
		t.Fatalf("stale ticket: got %v, want ErrResetTicketInvalid", err)
	}

	if err := svc.ResetPassword(ctx, secondTicket, "newpass2"); err != nil {
		t.Fatalf("reset with current ticket: %v", err)
	}

	stored := repo.users[user.ID]
	if stored.ResetToken != "" || stored.ResetTokenExpires != nil {
		t.Fatalf("ticket fields not cleared after use")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass2")) != nil {
		t.Fatalf("new password not stored")
	}

	// Consumed tickets cannot be replayed.
	if err := svc.ResetPassword(ctx, secondTicket, "newpass3"); !errors.Is(err, domain.ErrResetTicketInvalid) {
		t.Fatalf("replayed ticket: got %v, want ErrResetTicketInvalid", err)
	}
}

func TestAuthService_ResetPassword_ExpiredTicket(t *testing.T) {
	user := seedUser(t, "ivan@example.com", "oldpass", domain.RoleStaff, true)
	repo := newStubUserRepo(user)
	svc, _ := newAuthService(repo)

	ctx := context.Background()
	if err := svc.ForgotPassword(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	ticket := repo.users[user.ID].ResetToken
	oldHash := repo.users[user.ID].PasswordHash

	expired := time.Now().UTC().Add(-time.Minute)
	repo.users[user.ID].ResetTokenExpires = &expired

	if err := svc.ResetPassword(ctx, ticket, "newpass"); !errors.Is(err, domain.ErrResetTicketInvalid) {
		t.Fatalf("expired ticket: got %v, want ErrResetTicketInvalid", err)
	}
	if repo.users[user.ID].PasswordHash != oldHash {
		t.Fatalf("password must be unchanged after failed reset")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := seedUser(t, "judy@example.com", "oldpass", domain.RoleStaff, true)
	repo := newStubUserRepo(user)
	svc, _ := newAuthService(repo)

	ctx := context.Background()
	if err := svc.ChangePassword(ctx, user.ID, "wrong", "newpass"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("wrong old password: got %v, want ErrPasswordMismatch", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "oldpass", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.users[user.ID].PasswordHash), []byte("newpass")) != nil {
		t.Fatalf("new password not stored")
	}
}
