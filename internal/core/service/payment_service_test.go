package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type stubPaymentRepo struct {
	payments map[uuid.UUID]*domain.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*domain.Payment)}
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	clone := *p
	r.payments[p.ID] = &clone
	return p, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, p *domain.Payment) error {
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

type paymentFixture struct {
	svc      *PaymentService
	bookings *stubBookingRepo
	booking  *domain.Booking
	actor    *domain.User
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	tenantID := uuid.New()
	booking := &domain.Booking{
		ID:            uuid.New(),
		TenantID:      tenantID,
		BookingNumber: "BK-TEST0001",
		CheckIn:       time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC),
		Status:        domain.BookingConfirmed,
		TotalAmount:   500,
		PaymentState:  domain.PaymentUnpaid,
	}
	bookings := newStubBookingRepo()
	bookings.bookings[booking.ID] = booking
	actor := &domain.User{ID: uuid.New(), Role: domain.RoleStaff, TenantID: &tenantID, IsActive: true}

	svc := NewPaymentService(newStubPaymentRepo(), bookings, zerolog.Nop())
	return &paymentFixture{svc: svc, bookings: bookings, booking: booking, actor: actor}
}

func (f *paymentFixture) pay(t *testing.T, amount float64) *domain.Payment {
	t.Helper()
	payment, err := f.svc.Create(context.Background(), f.actor, ports.CreatePaymentInput{
		BookingID: f.booking.ID,
		Amount:    amount,
		Method:    "cash",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment
}

func (f *paymentFixture) bookingState(t *testing.T) domain.PaymentState {
	t.Helper()
	b, err := f.bookings.FindByID(context.Background(), f.booking.ID)
	if err != nil {
		t.Fatalf("find booking: %v", err)
	}
	return b.PaymentState
}

func TestPaymentService_Complete_SettlesBooking(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.pay(t, 500)

	completed, err := f.svc.Complete(context.Background(), f.actor, payment.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.PaymentStatusCompleted || completed.PaidAt == nil {
		t.Fatalf("unexpected payment %+v", completed)
	}
	if got := f.bookingState(t); got != domain.PaymentPaid {
		t.Fatalf("payment state = %s, want paid", got)
	}
}

func TestPaymentService_Complete_PartialAmount(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.pay(t, 200)

	if _, err := f.svc.Complete(context.Background(), f.actor, payment.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := f.bookingState(t); got != domain.PaymentPartiallyPaid {
		t.Fatalf("payment state = %s, want partially_paid", got)
	}
}

func TestPaymentService_Refund_FullRefundMarksBookingRefunded(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.pay(t, 500)

	if _, err := f.svc.Complete(context.Background(), f.actor, payment.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	refunded, err := f.svc.Refund(context.Background(), f.actor, payment.ID)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refunded.Status != domain.PaymentStatusRefunded {
		t.Fatalf("status = %s, want refunded", refunded.Status)
	}
	if got := f.bookingState(t); got != domain.PaymentRefunded {
		t.Fatalf("payment state = %s, want refunded", got)
	}
}

func TestPaymentService_Refund_PartialRefundKeepsPartiallyPaid(t *testing.T) {
	f := newPaymentFixture(t)
	first := f.pay(t, 300)
	second := f.pay(t, 200)

	for _, p := range []*domain.Payment{first, second} {
		if _, err := f.svc.Complete(context.Background(), f.actor, p.ID); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}
	if _, err := f.svc.Refund(context.Background(), f.actor, second.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if got := f.bookingState(t); got != domain.PaymentPartiallyPaid {
		t.Fatalf("payment state = %s, want partially_paid", got)
	}
}

func TestPaymentService_Refund_PendingPayment(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.pay(t, 500)

	if _, err := f.svc.Refund(context.Background(), f.actor, payment.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}
