package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// CreateUserInput carries the fields an administrator supplies for a new user.
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
	TenantID *uuid.UUID
	Phone    string
}

// UpdateUserInput carries optional fields; nil pointers are left unchanged.
type UpdateUserInput struct {
	FullName *string
	Phone    *string
	Avatar   *string
	Role     *domain.Role
	IsActive *bool
}

// UserService manages staff accounts. Every operation takes the acting user
// so tenant isolation and role rules can be enforced.
type UserService interface {
	List(ctx context.Context, actor *domain.User, filter UserFilter, page ListParams) ([]domain.User, int64, error)
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}
