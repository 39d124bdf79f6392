package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// CreateRoomTypeInput carries the fields for a new room category.
type CreateRoomTypeInput struct {
	HotelID     uuid.UUID
	Name        string
	Description string
	BedType     domain.BedType
	Capacity    int
	BasePrice   float64
	Amenities   []string
}

// UpdateRoomTypeInput carries optional fields; nil pointers are left unchanged.
type UpdateRoomTypeInput struct {
	Name        *string
	Description *string
	BedType     *domain.BedType
	Capacity    *int
	BasePrice   *float64
	Amenities   []string
}

// CreateRoomInput carries the fields for a new physical room.
type CreateRoomInput struct {
	HotelID    uuid.UUID
	RoomTypeID uuid.UUID
	Number     string
	Floor      int
}

// RoomService manages room types and rooms within a hotel.
type RoomService interface {
	ListRoomTypes(ctx context.Context, actor *domain.User, hotelID uuid.UUID, page ListParams) ([]domain.RoomType, int64, error)
	CreateRoomType(ctx context.Context, actor *domain.User, input CreateRoomTypeInput) (*domain.RoomType, error)
	UpdateRoomType(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateRoomTypeInput) (*domain.RoomType, error)
	DeleteRoomType(ctx context.Context, actor *domain.User, id uuid.UUID) error

	ListRooms(ctx context.Context, actor *domain.User, filter RoomFilter, page ListParams) ([]domain.Room, int64, error)
	CreateRoom(ctx context.Context, actor *domain.User, input CreateRoomInput) (*domain.Room, error)
	SetRoomStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.RoomStatus) (*domain.Room, error)
	DeleteRoom(ctx context.Context, actor *domain.User, id uuid.UUID) error
}
