package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/api"
	"github.com/stayhub/hotel-saas/internal/api/handler"
	"github.com/stayhub/hotel-saas/internal/api/middleware"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (*ports.TokenPair, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
	changePasswordFn func(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	forgotPasswordFn func(ctx context.Context, email string) error
	resetPasswordFn  func(ctx context.Context, ticket, newPassword string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, oldPassword, newPassword)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotPasswordFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, ticket, newPassword string) error {
	return s.resetPasswordFn(ctx, ticket, newPassword)
}

// newTestEcho wires the validator and error handler the server uses, so
// handler errors map to the same status codes as in production.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	userID := uuid.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenPair, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.TokenPair{
				AccessToken:  "access123",
				RefreshToken: "refresh123",
				TokenType:    "Bearer",
				ExpiresIn:    1800,
				User:         &domain.User{ID: userID, Email: email, Role: domain.RoleTenantAdmin},
			}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access123" || resp["token_type"] != "Bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenPair, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenPair, error) {
			return nil, domain.ErrUserInactive
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.TokenPair, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "refresh123" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return &ports.TokenPair{
				AccessToken:  "access456",
				RefreshToken: refreshToken,
				TokenType:    "Bearer",
				ExpiresIn:    1800,
			}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.Refresh, http.MethodPost, "/auth/refresh-token",
		`{"refresh_token":"refresh123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access456" || resp["refresh_token"] != "refresh123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Refresh_Expired(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.Refresh, http.MethodPost, "/auth/refresh-token",
		`{"refresh_token":"stale"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	user := &domain.User{ID: uuid.New(), Email: "me@example.com", Role: domain.RoleStaff}
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ActorKey, user)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "me@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
			return domain.ErrPasswordMismatch
		},
	}
	h := handler.NewAuthHandler(stub)

	user := &domain.User{ID: uuid.New(), Email: "me@example.com", Role: domain.RoleStaff}
	req := httptest.NewRequest(http.MethodPost, "/auth/change-password",
		strings.NewReader(`{"old_password":"wrong","new_password":"newsecret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ActorKey, user)

	if err := h.ChangePassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_ForgotPassword_AlwaysSucceeds(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		forgotPasswordFn: func(ctx context.Context, email string) error {
			return nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.ForgotPassword, http.MethodPost, "/auth/forgot-password",
		`{"email":"ghost@example.com"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "if the email exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_ResetPassword_InvalidTicket(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		resetPasswordFn: func(ctx context.Context, ticket, newPassword string) error {
			return domain.ErrResetTicketInvalid
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.ResetPassword, http.MethodPost, "/auth/reset-password",
		`{"token":"expired","new_password":"newsecret"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_ResetPassword_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		resetPasswordFn: func(ctx context.Context, ticket, newPassword string) error {
			if ticket != "abc123" || newPassword != "newsecret" {
				t.Fatalf("unexpected args: %s %s", ticket, newPassword)
			}
			return nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, h.ResetPassword, http.MethodPost, "/auth/reset-password",
		`{"token":"abc123","new_password":"newsecret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
