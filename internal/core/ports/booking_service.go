package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// BookingRoomInput selects one room for a booking.
type BookingRoomInput struct {
	RoomID    uuid.UUID
	RateNight float64
}

// CreateBookingInput carries the fields for a new booking.
type CreateBookingInput struct {
	HotelID       uuid.UUID
	CustomerID    uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	AdultCount    int
	ChildrenCount int
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	SpecialReqs   string
	Note          string
	DiscountAmt   float64
	TaxAmount     float64
	Channel       string
	Rooms         []BookingRoomInput
}

// UpdateBookingInput carries optional fields; nil pointers are left unchanged.
// Only pending and confirmed bookings may be modified.
type UpdateBookingInput struct {
	CheckIn       *time.Time
	CheckOut      *time.Time
	AdultCount    *int
	ChildrenCount *int
	GuestName     *string
	GuestPhone    *string
	SpecialReqs   *string
	Note          *string
}

// BookingService manages the reservation lifecycle.
type BookingService interface {
	List(ctx context.Context, actor *domain.User, filter BookingFilter, page ListParams) ([]domain.Booking, int64, error)
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Booking, error)
	Create(ctx context.Context, actor *domain.User, input CreateBookingInput) (*domain.Booking, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateBookingInput) (*domain.Booking, error)
	// Transition moves a booking along its status state machine. Invalid
	// transitions fail with domain.ErrInvalidTransition. A transition to
	// confirmed triggers a chat notification to the customer.
	Transition(ctx context.Context, actor *domain.User, id uuid.UUID, next domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}
