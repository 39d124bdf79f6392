package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// BookingService manages the reservation lifecycle.
type BookingService struct {
	bookings  ports.BookingRepository
	hotels    ports.HotelRepository
	customers ports.CustomerRepository
	notifier  ports.NotificationDispatcher
	logger    zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, hotels ports.HotelRepository, customers ports.CustomerRepository, notifier ports.NotificationDispatcher, logger zerolog.Logger) *BookingService {
	return &BookingService{
		bookings:  bookings,
		hotels:    hotels,
		customers: customers,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *BookingService) List(ctx context.Context, actor *domain.User, filter ports.BookingFilter, page ports.ListParams) ([]domain.Booking, int64, error) {
	scope, err := access.ScopeTenant(actor, filter.TenantID)
	if err != nil {
		return nil, 0, err
	}
	filter.TenantID = scope
	return s.bookings.List(ctx, filter, page.Normalize())
}

func (s *BookingService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, booking.TenantID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Create(ctx context.Context, actor *domain.User, input ports.CreateBookingInput) (*domain.Booking, error) {
	hotel, err := s.hotels.FindByID(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, hotel.TenantID); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.TenantID != hotel.TenantID {
		return nil, domain.ErrForbidden
	}

	if !input.CheckOut.After(input.CheckIn) || len(input.Rooms) == 0 || input.AdultCount < 1 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:            uuid.New(),
		HotelID:       hotel.ID,
		TenantID:      hotel.TenantID,
		CustomerID:    customer.ID,
		BookingNumber: generateBookingNumber(),
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Status:        domain.BookingPending,
		AdultCount:    input.AdultCount,
		ChildrenCount: input.ChildrenCount,
		GuestName:     input.GuestName,
		GuestEmail:    input.GuestEmail,
		GuestPhone:    input.GuestPhone,
		SpecialReqs:   input.SpecialReqs,
		Note:          input.Note,
		DiscountAmt:   input.DiscountAmt,
		TaxAmount:     input.TaxAmount,
		PaymentState:  domain.PaymentUnpaid,
		Channel:       input.Channel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, r := range input.Rooms {
		booking.Rooms = append(booking.Rooms, domain.BookingRoom{RoomID: r.RoomID, RateNight: r.RateNight})
	}
	booking.TotalAmount = computeTotal(booking)

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().
		Str("booking_number", created.BookingNumber).
		Str("hotel_id", hotel.ID.String()).
		Int("nights", created.Nights()).
		Msg("booking created")
	return created, nil
}

func (s *BookingService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input ports.UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeModified() {
		return nil, domain.ErrInvalidTransition
	}

	if input.CheckIn != nil {
		booking.CheckIn = *input.CheckIn
	}
	if input.CheckOut != nil {
		booking.CheckOut = *input.CheckOut
	}
	if !booking.CheckOut.After(booking.CheckIn) {
		return nil, domain.ErrInvalidInput
	}
	if input.AdultCount != nil {
		booking.AdultCount = *input.AdultCount
	}
	if input.ChildrenCount != nil {
		booking.ChildrenCount = *input.ChildrenCount
	}
	if input.GuestName != nil {
		booking.GuestName = *input.GuestName
	}
	if input.GuestPhone != nil {
		booking.GuestPhone = *input.GuestPhone
	}
	if input.SpecialReqs != nil {
		booking.SpecialReqs = *input.SpecialReqs
	}
	if input.Note != nil {
		booking.Note = *input.Note
	}
	booking.TotalAmount = computeTotal(booking)
	booking.UpdatedAt = time.Now().UTC()

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Transition moves the booking along its state machine. Confirmation
// enqueues a chat notification for customers reachable on the platform; the
// notification is fire-and-forget and never fails the transition.
func (s *BookingService) Transition(ctx context.Context, actor *domain.User, id uuid.UUID, next domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, next)
	}

	if err := s.bookings.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	prev := booking.Status
	booking.Status = next
	booking.UpdatedAt = time.Now().UTC()

	s.logger.Info().
		Str("booking_number", booking.BookingNumber).
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("booking transitioned")

	if next == domain.BookingConfirmed {
		s.notifyConfirmation(ctx, booking)
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if err := access.RequireRoleAtLeast(actor, domain.RoleHotelAdmin); err != nil {
		return err
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.bookings.SoftDelete(ctx, id)
}

func (s *BookingService) notifyConfirmation(ctx context.Context, booking *domain.Booking) {
	customer, err := s.customers.FindByID(ctx, booking.CustomerID)
	if err != nil || customer.ZaloUserID == "" {
		return
	}
	hotel, err := s.hotels.FindByID(ctx, booking.HotelID)
	if err != nil {
		return
	}
	s.notifier.Enqueue(ports.BookingNotification{
		ZaloUserID:    customer.ZaloUserID,
		BookingNumber: booking.BookingNumber,
		HotelName:     hotel.Name,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		TotalAmount:   booking.TotalAmount,
	})
}

func computeTotal(b *domain.Booking) float64 {
	nights := b.Nights()
	var total float64
	for _, r := range b.Rooms {
		total += r.RateNight * float64(nights)
	}
	return total - b.DiscountAmt + b.TaxAmount
}

// generateBookingNumber returns a unique booking number in the format BK-XXXXXXXX.
func generateBookingNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("BK-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("BK-%08X", b)
}
