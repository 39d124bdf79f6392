package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// CreateCustomerInput carries the fields for a new guest record.
type CreateCustomerInput struct {
	FullName   string
	Email      string
	Phone      string
	ZaloUserID string
	Note       string
}

// UpdateCustomerInput carries optional fields; nil pointers are left unchanged.
type UpdateCustomerInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Note     *string
}

// CustomerService manages tenant-scoped guest records. Creation dedupes by
// phone within the tenant.
type CustomerService interface {
	List(ctx context.Context, actor *domain.User, filter CustomerFilter, page ListParams) ([]domain.Customer, int64, error)
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Customer, error)
	Create(ctx context.Context, actor *domain.User, input CreateCustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}
