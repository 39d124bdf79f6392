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

// RoomService manages room types and rooms. Every operation resolves the
// owning hotel first so tenant isolation is checked against the hotel's
// tenant, not request input.
type RoomService struct {
	hotels    ports.HotelRepository
	roomTypes ports.RoomTypeRepository
	rooms     ports.RoomRepository
	logger    zerolog.Logger
}

func NewRoomService(hotels ports.HotelRepository, roomTypes ports.RoomTypeRepository, rooms ports.RoomRepository, logger zerolog.Logger) *RoomService {
	return &RoomService{hotels: hotels, roomTypes: roomTypes, rooms: rooms, logger: logger}
}

func (s *RoomService) guardHotel(ctx context.Context, actor *domain.User, hotelID uuid.UUID) (*domain.Hotel, error) {
	hotel, err := s.hotels.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, hotel.TenantID); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *RoomService) ListRoomTypes(ctx context.Context, actor *domain.User, hotelID uuid.UUID, page ports.ListParams) ([]domain.RoomType, int64, error) {
	if _, err := s.guardHotel(ctx, actor, hotelID); err != nil {
		return nil, 0, err
	}
	return s.roomTypes.ListByHotel(ctx, hotelID, page.Normalize())
}

func (s *RoomService) CreateRoomType(ctx context.Context, actor *domain.User, input ports.CreateRoomTypeInput) (*domain.RoomType, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return nil, err
	}
	if _, err := s.guardHotel(ctx, actor, input.HotelID); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Capacity <= 0 || input.BasePrice < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	rt := &domain.RoomType{
		ID:          uuid.New(),
		HotelID:     input.HotelID,
		Name:        input.Name,
		Description: input.Description,
		BedType:     input.BedType,
		Capacity:    input.Capacity,
		BasePrice:   input.BasePrice,
		Amenities:   input.Amenities,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.roomTypes.Create(ctx, rt)
}

func (s *RoomService) UpdateRoomType(ctx context.Context, actor *domain.User, id uuid.UUID, input ports.UpdateRoomTypeInput) (*domain.RoomType, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return nil, err
	}
	rt, err := s.roomTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.guardHotel(ctx, actor, rt.HotelID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		rt.Name = *input.Name
	}
	if input.Description != nil {
		rt.Description = *input.Description
	}
	if input.BedType != nil {
		rt.BedType = *input.BedType
	}
	if input.Capacity != nil {
		rt.Capacity = *input.Capacity
	}
	if input.BasePrice != nil {
		rt.BasePrice = *input.BasePrice
	}
	if input.Amenities != nil {
		rt.Amenities = input.Amenities
	}
	rt.UpdatedAt = time.Now().UTC()

	if err := s.roomTypes.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *RoomService) DeleteRoomType(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return err
	}
	rt, err := s.roomTypes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.guardHotel(ctx, actor, rt.HotelID); err != nil {
		return err
	}
	return s.roomTypes.SoftDelete(ctx, id)
}

func (s *RoomService) ListRooms(ctx context.Context, actor *domain.User, filter ports.RoomFilter, page ports.ListParams) ([]domain.Room, int64, error) {
	if filter.HotelID == nil {
		return nil, 0, domain.ErrInvalidInput
	}
	if _, err := s.guardHotel(ctx, actor, *filter.HotelID); err != nil {
		return nil, 0, err
	}
	return s.rooms.List(ctx, filter, page.Normalize())
}

func (s *RoomService) CreateRoom(ctx context.Context, actor *domain.User, input ports.CreateRoomInput) (*domain.Room, error) {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return nil, err
	}
	if _, err := s.guardHotel(ctx, actor, input.HotelID); err != nil {
		return nil, err
	}
	rt, err := s.roomTypes.FindByID(ctx, input.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if rt.HotelID != input.HotelID {
		return nil, domain.ErrInvalidInput
	}
	if input.Number == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	room := &domain.Room{
		ID:         uuid.New(),
		HotelID:    input.HotelID,
		RoomTypeID: input.RoomTypeID,
		Number:     input.Number,
		Floor:      input.Floor,
		Status:     domain.RoomAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.rooms.Create(ctx, room)
}

// SetRoomStatus moves a room between its operational states. Staff may do
// this (housekeeping flips rooms to cleaning/available).
func (s *RoomService) SetRoomStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.RoomStatus) (*domain.Room, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.guardHotel(ctx, actor, room.HotelID); err != nil {
		return nil, err
	}

	room.Status = status
	room.UpdatedAt = time.Now().UTC()
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return err
	}
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.guardHotel(ctx, actor, room.HotelID); err != nil {
		return err
	}
	return s.rooms.SoftDelete(ctx, id)
}
