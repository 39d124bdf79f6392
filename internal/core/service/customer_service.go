package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// CustomerService manages tenant-scoped guest records.
type CustomerService struct {
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger}
}

func (s *CustomerService) List(ctx context.Context, actor *domain.User, filter ports.CustomerFilter, page ports.ListParams) ([]domain.Customer, int64, error) {
	scope, err := access.ScopeTenant(actor, filter.TenantID)
	if err != nil {
		return nil, 0, err
	}
	filter.TenantID = scope
	return s.customers.List(ctx, filter, page.Normalize())
}

func (s *CustomerService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, customer.TenantID); err != nil {
		return nil, err
	}
	return customer, nil
}

// Create adds a guest record in the actor's tenant, deduplicating by phone.
func (s *CustomerService) Create(ctx context.Context, actor *domain.User, input ports.CreateCustomerInput) (*domain.Customer, error) {
	if actor.TenantID == nil {
		// Super admins have no tenant of their own to attach guests to.
		return nil, domain.ErrInvalidInput
	}
	if input.FullName == "" {
		return nil, domain.ErrInvalidInput
	}

	if input.Phone != "" {
		existing, err := s.customers.FindByPhone(ctx, *actor.TenantID, input.Phone)
		if err == nil && existing != nil {
			return nil, domain.ErrCustomerExists
		}
		if err != nil && !errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:         uuid.New(),
		TenantID:   *actor.TenantID,
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		ZaloUserID: input.ZaloUserID,
		Note:       input.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("customer_id", created.ID.String()).Str("tenant_id", created.TenantID.String()).Msg("customer created")
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Note != nil {
		customer.Note = *input.Note
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleStaff); err != nil {
		return err
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.customers.SoftDelete(ctx, id)
}
