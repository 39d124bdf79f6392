package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

func newUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, &stubMailer{}, zerolog.Nop())
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	tenantID := uuid.New()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleTenantAdmin, TenantID: &tenantID, IsActive: true}
	repo := newStubUserRepo(admin)
	svc := newUserService(repo)

	created, err := svc.Create(context.Background(), admin, ports.CreateUserInput{
		Email:    "staff@example.com",
		Password: "pass123",
		FullName: "Staff Member",
		Role:     domain.RoleStaff,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pass123")) != nil {
		t.Fatalf("stored hash does not match password")
	}
	if created.TenantID == nil || *created.TenantID != tenantID {
		t.Fatalf("user must inherit the tenant admin's tenant")
	}
}

func TestUserService_Create_TenantAdminCannotMintSuperAdmin(t *testing.T) {
	tenantID := uuid.New()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleTenantAdmin, TenantID: &tenantID, IsActive: true}
	svc := newUserService(newStubUserRepo(admin))

	_, err := svc.Create(context.Background(), admin, ports.CreateUserInput{
		Email:    "evil@example.com",
		Password: "pass",
		Role:     domain.RoleSuperAdmin,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestUserService_Create_StaffForbidden(t *testing.T) {
	tenantID := uuid.New()
	staff := &domain.User{ID: uuid.New(), Role: domain.RoleStaff, TenantID: &tenantID, IsActive: true}
	svc := newUserService(newStubUserRepo(staff))

	_, err := svc.Create(context.Background(), staff, ports.CreateUserInput{
		Email:    "x@example.com",
		Password: "pass",
		Role:     domain.RoleStaff,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestUserService_Get_TenantIsolation(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()
	adminA := &domain.User{ID: uuid.New(), Role: domain.RoleTenantAdmin, TenantID: &tenantA, IsActive: true}
	userB := &domain.User{ID: uuid.New(), Email: "b@example.com", Role: domain.RoleStaff, TenantID: &tenantB, IsActive: true}
	svc := newUserService(newStubUserRepo(adminA, userB))

	if _, err := svc.Get(context.Background(), adminA, userB.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-tenant read: got %v, want ErrForbidden", err)
	}

	super := &domain.User{ID: uuid.New(), Role: domain.RoleSuperAdmin, IsActive: true}
	if _, err := svc.Get(context.Background(), super, userB.ID); err != nil {
		t.Fatalf("super admin read: %v", err)
	}
}

func TestUserService_Get_Self(t *testing.T) {
	tenantID := uuid.New()
	staff := &domain.User{ID: uuid.New(), Email: "me@example.com", Role: domain.RoleStaff, TenantID: &tenantID, IsActive: true}
	svc := newUserService(newStubUserRepo(staff))

	got, err := svc.Get(context.Background(), staff, staff.ID)
	if err != nil {
		t.Fatalf("self read: %v", err)
	}
	if got.ID != staff.ID {
		t.Fatalf("unexpected user %+v", got)
	}
}
