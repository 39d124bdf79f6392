package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// TenantService manages tenant organizations.
type TenantService struct {
	tenants ports.TenantRepository
	logger  zerolog.Logger
}

func NewTenantService(tenants ports.TenantRepository, logger zerolog.Logger) *TenantService {
	return &TenantService{tenants: tenants, logger: logger}
}

func (s *TenantService) List(ctx context.Context, actor *domain.User, page ports.ListParams) ([]domain.Tenant, int64, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleSuperAdmin); err != nil {
		return nil, 0, err
	}
	return s.tenants.List(ctx, page.Normalize())
}

// Get allows a super admin to read any tenant and a tenant admin to read
// their own.
func (s *TenantService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Tenant, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, id); err != nil {
		return nil, err
	}
	return s.tenants.FindByID(ctx, id)
}

func (s *TenantService) Create(ctx context.Context, actor *domain.User, input ports.CreateTenantInput) (*domain.Tenant, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	plan := input.Plan
	if plan == "" {
		plan = domain.PlanFree
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:           uuid.New(),
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Status:       domain.TenantPending,
		Plan:         plan,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.tenants.Create(ctx, tenant)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tenant_id", created.ID.String()).Str("name", created.Name).Msg("tenant created")
	return created, nil
}

func (s *TenantService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input ports.UpdateTenantInput) (*domain.Tenant, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.ContactEmail != nil {
		tenant.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		tenant.ContactPhone = *input.ContactPhone
	}
	if input.Status != nil {
		tenant.Status = *input.Status
	}
	if input.Plan != nil {
		tenant.Plan = *input.Plan
	}
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if err := s.tenants.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("tenant_id", id.String()).Msg("tenant deleted")
	return nil
}
