package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type stubBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking)}
}

func (r *stubBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByNumber(_ context.Context, number string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingNumber == number {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) List(context.Context, ports.BookingFilter, ports.ListParams) ([]domain.Booking, int64, error) {
	return nil, 0, nil
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	clone := *b
	r.bookings[b.ID] = &clone
	return b, nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBookingRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

type stubHotelRepo struct {
	hotels map[uuid.UUID]*domain.Hotel
}

func newStubHotelRepo(hotels ...*domain.Hotel) *stubHotelRepo {
	r := &stubHotelRepo{hotels: make(map[uuid.UUID]*domain.Hotel)}
	for _, h := range hotels {
		r.hotels[h.ID] = h
	}
	return r
}

func (r *stubHotelRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Hotel, error) {
	h, ok := r.hotels[id]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *stubHotelRepo) List(context.Context, ports.HotelFilter, ports.ListParams) ([]domain.Hotel, int64, error) {
	return nil, 0, nil
}

func (r *stubHotelRepo) Create(_ context.Context, h *domain.Hotel) (*domain.Hotel, error) {
	r.hotels[h.ID] = h
	return h, nil
}

func (r *stubHotelRepo) Update(_ context.Context, h *domain.Hotel) error {
	r.hotels[h.ID] = h
	return nil
}

func (r *stubHotelRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(r.hotels, id)
	return nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*domain.Customer
}

func newStubCustomerRepo(customers ...*domain.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{customers: make(map[uuid.UUID]*domain.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindByPhone(context.Context, uuid.UUID, string) (*domain.Customer, error) {
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) FindByZaloID(_ context.Context, tenantID uuid.UUID, zaloUserID string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.ZaloUserID == zaloUserID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) List(context.Context, ports.CustomerFilter, ports.ListParams) ([]domain.Customer, int64, error) {
	return nil, 0, nil
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.customers[c.ID] = c
	return c, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

type stubNotifier struct {
	queued []ports.BookingNotification
}

func (n *stubNotifier) Enqueue(notification ports.BookingNotification) {
	n.queued = append(n.queued, notification)
}

type bookingFixture struct {
	svc      *BookingService
	notifier *stubNotifier
	tenantID uuid.UUID
	hotel    *domain.Hotel
	customer *domain.Customer
	actor    *domain.User
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	tenantID := uuid.New()
	hotel := &domain.Hotel{ID: uuid.New(), TenantID: tenantID, Name: "The Cliff Resort"}
	customer := &domain.Customer{ID: uuid.New(), TenantID: tenantID, FullName: "Guest", ZaloUserID: "zalo-123"}
	actor := &domain.User{ID: uuid.New(), Role: domain.RoleStaff, TenantID: &tenantID, IsActive: true}

	notifier := &stubNotifier{}
	svc := NewBookingService(newStubBookingRepo(), newStubHotelRepo(hotel), newStubCustomerRepo(customer), notifier, zerolog.Nop())
	return &bookingFixture{svc: svc, notifier: notifier, tenantID: tenantID, hotel: hotel, customer: customer, actor: actor}
}

func (f *bookingFixture) createBooking(t *testing.T) *domain.Booking {
	t.Helper()
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	booking, err := f.svc.Create(context.Background(), f.actor, ports.CreateBookingInput{
		HotelID:    f.hotel.ID,
		CustomerID: f.customer.ID,
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 3),
		AdultCount: 2,
		Rooms: []ports.BookingRoomInput{
			{RoomID: uuid.New(), RateNight: 100},
			{RoomID: uuid.New(), RateNight: 150},
		},
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func TestBookingService_Create(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	if !strings.HasPrefix(booking.BookingNumber, "BK-") {
		t.Fatalf("unexpected booking number %q", booking.BookingNumber)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("status = %s, want pending", booking.Status)
	}
	// 3 nights at 100 + 150 per night.
	if booking.TotalAmount != 750 {
		t.Fatalf("total = %v, want 750", booking.TotalAmount)
	}
	if booking.PaymentState != domain.PaymentUnpaid {
		t.Fatalf("payment state = %s, want unpaid", booking.PaymentState)
	}
}

func TestBookingService_Create_ShortStayChargesOneNight(t *testing.T) {
	f := newBookingFixture(t)

	// 2pm check-in, noon check-out the next day: 22 hours on the clock,
	// one night on the bill.
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	booking, err := f.svc.Create(context.Background(), f.actor, ports.CreateBookingInput{
		HotelID:    f.hotel.ID,
		CustomerID: f.customer.ID,
		CheckIn:    checkIn,
		CheckOut:   time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC),
		AdultCount: 1,
		Rooms:      []ports.BookingRoomInput{{RoomID: uuid.New(), RateNight: 100}},
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Nights() != 1 {
		t.Fatalf("nights = %d, want 1", booking.Nights())
	}
	if booking.TotalAmount != 100 {
		t.Fatalf("total = %v, want 100", booking.TotalAmount)
	}
}

func TestBookingService_Create_InvalidDates(t *testing.T) {
	f := newBookingFixture(t)
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(context.Background(), f.actor, ports.CreateBookingInput{
		HotelID:    f.hotel.ID,
		CustomerID: f.customer.ID,
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, -1),
		AdultCount: 1,
		Rooms:      []ports.BookingRoomInput{{RoomID: uuid.New(), RateNight: 100}},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestBookingService_Create_CrossTenantForbidden(t *testing.T) {
	f := newBookingFixture(t)
	otherTenant := uuid.New()
	outsider := &domain.User{ID: uuid.New(), Role: domain.RoleTenantAdmin, TenantID: &otherTenant, IsActive: true}

	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(context.Background(), outsider, ports.CreateBookingInput{
		HotelID:    f.hotel.ID,
		CustomerID: f.customer.ID,
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 1),
		AdultCount: 1,
		Rooms:      []ports.BookingRoomInput{{RoomID: uuid.New(), RateNight: 100}},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestBookingService_Transition_ConfirmNotifies(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	confirmed, err := f.svc.Transition(context.Background(), f.actor, booking.ID, domain.BookingConfirmed)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if confirmed.Status != domain.BookingConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}
	if len(f.notifier.queued) != 1 {
		t.Fatalf("expected 1 queued notification, got %d", len(f.notifier.queued))
	}
	n := f.notifier.queued[0]
	if n.ZaloUserID != "zalo-123" || n.BookingNumber != booking.BookingNumber {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestBookingService_Transition_Invalid(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	// pending -> checked_in skips confirmation.
	if _, err := f.svc.Transition(context.Background(), f.actor, booking.ID, domain.BookingCheckedIn); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
	if len(f.notifier.queued) != 0 {
		t.Fatalf("no notification expected on failed transition")
	}
}

func TestBookingService_Transition_CancelledIsTerminal(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	if _, err := f.svc.Transition(context.Background(), f.actor, booking.ID, domain.BookingCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.svc.Transition(context.Background(), f.actor, booking.ID, domain.BookingConfirmed); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}
