package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// ListParams carries common pagination inputs. Page is 1-based.
type ListParams struct {
	Page  int
	Limit int
}

// Normalize clamps pagination values to sane defaults.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
	return p
}

// Offset returns the number of records to skip.
func (p ListParams) Offset() int { return (p.Page - 1) * p.Limit }

// UserFilter narrows user listings.
type UserFilter struct {
	TenantID *uuid.UUID
	Role     domain.Role
	IsActive *bool
	Search   string
}

// UserRepository persists users and their credential/reset-ticket fields.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter, page ListParams) ([]domain.User, int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetResetTicket(ctx context.Context, id uuid.UUID, token string, expires *time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// TenantRepository persists tenant organizations.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, page ListParams) ([]domain.Tenant, int64, error)
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// HotelFilter narrows hotel listings.
type HotelFilter struct {
	TenantID *uuid.UUID
	Status   domain.HotelStatus
	City     string
	Search   string
}

// HotelRepository persists hotels.
type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error)
	List(ctx context.Context, filter HotelFilter, page ListParams) ([]domain.Hotel, int64, error)
	Create(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error)
	Update(ctx context.Context, hotel *domain.Hotel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// RoomTypeRepository persists hotel-scoped room categories.
type RoomTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.RoomType, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID, page ListParams) ([]domain.RoomType, int64, error)
	Create(ctx context.Context, rt *domain.RoomType) (*domain.RoomType, error)
	Update(ctx context.Context, rt *domain.RoomType) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	HotelID    *uuid.UUID
	RoomTypeID *uuid.UUID
	Status     domain.RoomStatus
}

// RoomRepository persists physical rooms.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	List(ctx context.Context, filter RoomFilter, page ListParams) ([]domain.Room, int64, error)
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	TenantID   *uuid.UUID
	HotelID    *uuid.UUID
	CustomerID *uuid.UUID
	Status     domain.BookingStatus
	From       *time.Time
	To         *time.Time
}

// BookingRepository persists bookings.
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByNumber(ctx context.Context, bookingNumber string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter, page ListParams) ([]domain.Booking, int64, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// CustomerFilter narrows customer listings.
type CustomerFilter struct {
	TenantID *uuid.UUID
	Search   string
}

// CustomerRepository persists tenant-scoped guest records.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*domain.Customer, error)
	FindByZaloID(ctx context.Context, tenantID uuid.UUID, zaloUserID string) (*domain.Customer, error)
	List(ctx context.Context, filter CustomerFilter, page ListParams) ([]domain.Customer, int64, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// FollowerRepository persists chat-platform followers.
type FollowerRepository interface {
	FindByZaloID(ctx context.Context, zaloUserID string) (*domain.Follower, error)
	List(ctx context.Context, tenantID uuid.UUID, page ListParams) ([]domain.Follower, int64, error)
	Upsert(ctx context.Context, follower *domain.Follower) error
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ZaloMessage) error
	ListByZaloID(ctx context.Context, zaloUserID string, page ListParams) ([]domain.ZaloMessage, int64, error)
}
