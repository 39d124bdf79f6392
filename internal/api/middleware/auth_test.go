package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/core/token"
)

type stubUserRepo struct {
	users   map[uuid.UUID]*domain.User
	findErr error
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(context.Context, ports.UserFilter, ports.ListParams) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error                     { return nil }
func (r *stubUserRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error    { return nil }
func (r *stubUserRepo) SetResetTicket(context.Context, uuid.UUID, string, *time.Time) error {
	return nil
}
func (r *stubUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (r *stubUserRepo) SoftDelete(context.Context, uuid.UUID) error             { return nil }

func newTestGate(t *testing.T, user *domain.User) (*access.Gate, *token.Issuer) {
	t.Helper()
	iss := token.NewIssuer("test-secret", 0, 0)
	repo := &stubUserRepo{users: map[uuid.UUID]*domain.User{user.ID: user}}
	return access.NewGate(iss, repo), iss
}

func activeUser() *domain.User {
	tenantID := uuid.New()
	return &domain.User{ID: uuid.New(), Role: domain.RoleStaff, TenantID: &tenantID, IsActive: true}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	user := activeUser()
	gate, iss := newTestGate(t, user)

	accessToken, err := iss.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(gate)(func(c echo.Context) error {
		called = true
		actor := Actor(c)
		if actor == nil || actor.ID != user.ID {
			t.Fatalf("actor not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	gate, _ := newTestGate(t, activeUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	gate, _ := newTestGate(t, activeUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	e := echo.New()
	user := activeUser()
	gate, iss := newTestGate(t, user)

	refreshToken, err := iss.IssueRefresh(user.ID, user.Role, user.TenantID)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_UserStoreFailure(t *testing.T) {
	e := echo.New()
	user := activeUser()
	iss := token.NewIssuer("test-secret", 0, 0)
	repo := &stubUserRepo{
		users:   map[uuid.UUID]*domain.User{user.ID: user},
		findErr: errors.New("connection reset"),
	}
	gate := access.NewGate(iss, repo)

	accessToken, err := iss.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// A broken user store must not read as a bad credential.
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InactiveUser(t *testing.T) {
	e := echo.New()
	user := activeUser()
	user.IsActive = false
	gate, iss := newTestGate(t, user)

	accessToken, err := iss.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
