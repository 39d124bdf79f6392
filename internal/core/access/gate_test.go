package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/core/token"
)

type stubUserRepo struct {
	users   map[uuid.UUID]*domain.User
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
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

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (r *stubUserRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

func (r *stubUserRepo) SetResetTicket(context.Context, uuid.UUID, string, *time.Time) error {
	return nil
}

func (r *stubUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }

func (r *stubUserRepo) SoftDelete(context.Context, uuid.UUID) error { return nil }

func activeUser(role domain.Role, tenantID *uuid.UUID) *domain.User {
	return &domain.User{ID: uuid.New(), Role: role, TenantID: tenantID, IsActive: true}
}

func TestGate_RequireAuthenticated(t *testing.T) {
	iss := token.NewIssuer("secret", 30*time.Minute, 7*24*time.Hour)
	tenantID := uuid.New()
	user := activeUser(domain.RoleStaff, &tenantID)
	gate := NewGate(iss, newStubUserRepo(user))

	signed, err := iss.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	got, err := gate.RequireAuthenticated(context.Background(), signed)
	if err != nil {
		t.Fatalf("RequireAuthenticated: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user id = %s, want %s", got.ID, user.ID)
	}
}

func TestGate_RequireAuthenticated_Failures(t *testing.T) {
	iss := token.NewIssuer("secret", 30*time.Minute, 7*24*time.Hour)
	tenantID := uuid.New()

	inactive := activeUser(domain.RoleStaff, &tenantID)
	inactive.IsActive = false
	gate := NewGate(iss, newStubUserRepo(inactive))

	refresh, _ := iss.IssueRefresh(inactive.ID, inactive.Role, inactive.TenantID)
	accessInactive, _ := iss.IssueAccess(inactive.ID, inactive.Role, inactive.TenantID)
	accessGhost, _ := iss.IssueAccess(uuid.New(), domain.RoleStaff, &tenantID)

	cases := []struct {
		name   string
		bearer string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"refresh token used as access", refresh},
		{"inactive user", accessInactive},
		{"unknown user", accessGhost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := gate.RequireAuthenticated(context.Background(), tc.bearer); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("got %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestGate_RequireAuthenticated_StoreFailure(t *testing.T) {
	iss := token.NewIssuer("secret", 30*time.Minute, 7*24*time.Hour)
	tenantID := uuid.New()
	user := activeUser(domain.RoleStaff, &tenantID)

	errStore := errors.New("connection reset")
	repo := newStubUserRepo(user)
	repo.findErr = errStore
	gate := NewGate(iss, repo)

	signed, err := iss.IssueAccess(user.ID, user.Role, user.TenantID)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	// A broken store must not read as a bad credential.
	_, err = gate.RequireAuthenticated(context.Background(), signed)
	if errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("store failure reported as ErrUnauthorized")
	}
	if !errors.Is(err, errStore) {
		t.Fatalf("got %v, want wrapped store error", err)
	}
}

func TestRequireRoleAtLeast(t *testing.T) {
	tenantID := uuid.New()

	cases := []struct {
		name    string
		role    domain.Role
		min     domain.Role
		allowed bool
	}{
		{"super admin passes anything", domain.RoleSuperAdmin, domain.RoleTenantAdmin, true},
		{"tenant admin passes itself", domain.RoleTenantAdmin, domain.RoleTenantAdmin, true},
		{"tenant admin passes lower", domain.RoleTenantAdmin, domain.RoleStaff, true},
		{"tenant admin cannot be super admin", domain.RoleTenantAdmin, domain.RoleSuperAdmin, false},
		{"staff passes staff", domain.RoleStaff, domain.RoleStaff, true},
		{"staff is not hotel admin", domain.RoleStaff, domain.RoleHotelAdmin, false},
		{"hotel admin is not staff", domain.RoleHotelAdmin, domain.RoleStaff, false},
		{"end user cannot administer", domain.RoleUser, domain.RoleTenantAdmin, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actor := activeUser(tc.role, &tenantID)
			err := RequireRoleAtLeast(actor, tc.min)
			if tc.allowed && err != nil {
				t.Fatalf("expected pass, got %v", err)
			}
			if !tc.allowed && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("got %v, want ErrForbidden", err)
			}
		})
	}
}

func TestRequireSameTenant(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	super := activeUser(domain.RoleSuperAdmin, nil)
	if err := RequireSameTenant(super, own); err != nil {
		t.Fatalf("super admin vs any tenant: %v", err)
	}
	if err := RequireSameTenant(super, other); err != nil {
		t.Fatalf("super admin vs other tenant: %v", err)
	}

	admin := activeUser(domain.RoleTenantAdmin, &own)
	if err := RequireSameTenant(admin, own); err != nil {
		t.Fatalf("tenant admin vs own tenant: %v", err)
	}
	if err := RequireSameTenant(admin, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("tenant admin vs other tenant: got %v, want ErrForbidden", err)
	}
}

func TestScopeTenant(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	super := activeUser(domain.RoleSuperAdmin, nil)
	if got, err := ScopeTenant(super, &other); err != nil || got == nil || *got != other {
		t.Fatalf("super admin scope: got %v, %v", got, err)
	}
	if got, err := ScopeTenant(super, nil); err != nil || got != nil {
		t.Fatalf("super admin unscoped: got %v, %v", got, err)
	}

	staff := activeUser(domain.RoleStaff, &own)
	if got, err := ScopeTenant(staff, nil); err != nil || got == nil || *got != own {
		t.Fatalf("staff pinned to own tenant: got %v, %v", got, err)
	}
	if _, err := ScopeTenant(staff, &other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("staff requesting other tenant: got %v, want ErrForbidden", err)
	}
}
