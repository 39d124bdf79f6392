package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// CreateHotelInput carries the fields for a new hotel.
type CreateHotelInput struct {
	TenantID     uuid.UUID
	Name         string
	Address      string
	City         string
	Country      string
	PostalCode   string
	Phone        string
	Email        string
	Website      string
	Location     domain.Coordinates
	Description  string
	StarRating   int
	CheckInTime  string
	CheckOutTime string
	Amenities    []string
	Thumbnail    string
	Gallery      []string
}

// UpdateHotelInput carries optional fields; nil pointers are left unchanged.
type UpdateHotelInput struct {
	Name        *string
	Address     *string
	City        *string
	Country     *string
	Phone       *string
	Email       *string
	Website     *string
	Description *string
	StarRating  *int
	Status      *domain.HotelStatus
	IsActive    *bool
	Amenities   []string
	Thumbnail   *string
	Gallery     []string
}

// HotelService manages hotels within the acting user's tenant scope.
type HotelService interface {
	List(ctx context.Context, actor *domain.User, filter HotelFilter, page ListParams) ([]domain.Hotel, int64, error)
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Hotel, error)
	Create(ctx context.Context, actor *domain.User, input CreateHotelInput) (*domain.Hotel, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateHotelInput) (*domain.Hotel, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}
