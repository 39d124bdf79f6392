package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// CreateTenantInput carries the fields for a new tenant organization.
type CreateTenantInput struct {
	Name         string
	ContactEmail string
	ContactPhone string
	Plan         domain.SubscriptionPlan
}

// UpdateTenantInput carries optional fields; nil pointers are left unchanged.
type UpdateTenantInput struct {
	Name         *string
	ContactEmail *string
	ContactPhone *string
	Status       *domain.TenantStatus
	Plan         *domain.SubscriptionPlan
}

// TenantService manages tenant organizations. All operations are restricted
// to super admins except Get, which a tenant admin may call on their own tenant.
type TenantService interface {
	List(ctx context.Context, actor *domain.User, page ListParams) ([]domain.Tenant, int64, error)
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Tenant, error)
	Create(ctx context.Context, actor *domain.User, input CreateTenantInput) (*domain.Tenant, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}
