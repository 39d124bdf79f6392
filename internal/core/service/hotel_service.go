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

// HotelService manages hotels within the acting user's tenant.
type HotelService struct {
	hotels ports.HotelRepository
	logger zerolog.Logger
}

func NewHotelService(hotels ports.HotelRepository, logger zerolog.Logger) *HotelService {
	return &HotelService{hotels: hotels, logger: logger}
}

func (s *HotelService) List(ctx context.Context, actor *domain.User, filter ports.HotelFilter, page ports.ListParams) ([]domain.Hotel, int64, error) {
	scope, err := access.ScopeTenant(actor, filter.TenantID)
	if err != nil {
		return nil, 0, err
	}
	filter.TenantID = scope
	return s.hotels.List(ctx, filter, page.Normalize())
}

func (s *HotelService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Hotel, error) {
	hotel, err := s.hotels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, hotel.TenantID); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) Create(ctx context.Context, actor *domain.User, input ports.CreateHotelInput) (*domain.Hotel, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return nil, err
	}
	// Non-super admins always create inside their own tenant.
	if actor.Role != domain.RoleSuperAdmin {
		input.TenantID = *actor.TenantID
	}
	if input.Name == "" || input.Address == "" || input.City == "" || input.Country == "" {
		return nil, domain.ErrInvalidInput
	}

	checkIn := input.CheckInTime
	if checkIn == "" {
		checkIn = "14:00"
	}
	checkOut := input.CheckOutTime
	if checkOut == "" {
		checkOut = "12:00"
	}

	now := time.Now().UTC()
	hotel := &domain.Hotel{
		ID:           uuid.New(),
		TenantID:     input.TenantID,
		Name:         input.Name,
		Address:      input.Address,
		City:         input.City,
		Country:      input.Country,
		PostalCode:   input.PostalCode,
		Phone:        input.Phone,
		Email:        input.Email,
		Website:      input.Website,
		Location:     input.Location,
		Description:  input.Description,
		StarRating:   input.StarRating,
		CheckInTime:  checkIn,
		CheckOutTime: checkOut,
		Amenities:    input.Amenities,
		Status:       domain.HotelDraft,
		IsActive:     true,
		Thumbnail:    input.Thumbnail,
		Gallery:      input.Gallery,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.hotels.Create(ctx, hotel)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("hotel_id", created.ID.String()).Str("tenant_id", created.TenantID.String()).Msg("hotel created")
	return created, nil
}

func (s *HotelService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input ports.UpdateHotelInput) (*domain.Hotel, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return nil, err
	}
	hotel, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		hotel.Name = *input.Name
	}
	if input.Address != nil {
		hotel.Address = *input.Address
	}
	if input.City != nil {
		hotel.City = *input.City
	}
	if input.Country != nil {
		hotel.Country = *input.Country
	}
	if input.Phone != nil {
		hotel.Phone = *input.Phone
	}
	if input.Email != nil {
		hotel.Email = *input.Email
	}
	if input.Website != nil {
		hotel.Website = *input.Website
	}
	if input.Description != nil {
		hotel.Description = *input.Description
	}
	if input.StarRating != nil {
		hotel.StarRating = *input.StarRating
	}
	if input.Status != nil {
		hotel.Status = *input.Status
	}
	if input.IsActive != nil {
		hotel.IsActive = *input.IsActive
	}
	if input.Amenities != nil {
		hotel.Amenities = input.Amenities
	}
	if input.Thumbnail != nil {
		hotel.Thumbnail = *input.Thumbnail
	}
	if input.Gallery != nil {
		hotel.Gallery = input.Gallery
	}
	hotel.UpdatedAt = time.Now().UTC()

	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleTenantAdmin); err != nil {
		return err
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.hotels.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("hotel_id", id.String()).Msg("hotel deleted")
	return nil
}
