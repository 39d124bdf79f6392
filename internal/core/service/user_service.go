package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// UserService manages staff accounts with tenant scoping.
type UserService struct {
	users  ports.UserRepository
	mailer ports.Mailer
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, mailer ports.Mailer, logger zerolog.Logger) *UserService {
	return &UserService{users: users, mailer: mailer, logger: logger}
}

// List returns users visible to the actor. A super admin sees every tenant
// (optionally filtered); a tenant admin is pinned to their own tenant.
func (s *UserService) List(ctx context.Context, actor *domain.User, filter ports.UserFilter, page ports.ListParams) ([]domain.User, int64, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return nil, 0, err
	}
	scope, err := access.ScopeTenant(actor, filter.TenantID)
	if err != nil {
		return nil, 0, err
	}
	filter.TenantID = scope
	return s.users.List(ctx, filter, page.Normalize())
}

func (s *UserService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Users may always read themselves; anyone else needs tenant-admin
	// visibility within the target's tenant.
	if actor.ID == id {
		return user, nil
	}
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if user.TenantID != nil {
		if err := access.RequireSameTenant(actor, *user.TenantID); err != nil {
			return nil, err
		}
	} else if actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if input.Email == "" || input.Password == "" || !input.Role.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	// A tenant admin creates users only inside their own tenant and can
	// never mint a super admin.
	if actor.Role != domain.RoleSuperAdmin {
		input.TenantID = actor.TenantID
		if input.Role == domain.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
	}
	if input.Role != domain.RoleSuperAdmin && input.TenantID == nil {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
		TenantID:     input.TenantID,
		IsActive:     true,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendNewAccount(ctx, created.Email, created.FullName); err != nil {
		s.logger.Warn().Err(err).Str("user_id", created.ID.String()).Msg("failed to send new account email")
	}

	s.logger.Info().Str("user_id", created.ID.String()).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Role and activation changes are administrative.
	if input.Role != nil || input.IsActive != nil {
		if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
			return nil, err
		}
		if input.Role != nil {
			if !input.Role.IsValid() {
				return nil, domain.ErrInvalidInput
			}
			if *input.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
				return nil, domain.ErrForbidden
			}
			user.Role = *input.Role
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.TenantID != nil {
		if err := access.RequireSameTenant(actor, *user.TenantID); err != nil {
			return err
		}
	} else if actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}
