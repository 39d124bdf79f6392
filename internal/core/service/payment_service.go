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

// PaymentService records payments and keeps booking settlement state current.
type PaymentService struct {
	payments ports.PaymentRepository
	bookings ports.BookingRepository
	logger   zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, bookings ports.BookingRepository, logger zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, bookings: bookings, logger: logger}
}

func (s *PaymentService) guardBooking(ctx context.Context, actor *domain.User, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSameTenant(actor, booking.TenantID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *PaymentService) ListByBooking(ctx context.Context, actor *domain.User, bookingID uuid.UUID) ([]domain.Payment, error) {
	if _, err := s.guardBooking(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

func (s *PaymentService) Create(ctx context.Context, actor *domain.User, input ports.CreatePaymentInput) (*domain.Payment, error) {
	booking, err := s.guardBooking(ctx, actor, input.BookingID)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 || input.Method == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:            uuid.New(),
		BookingID:     booking.ID,
		TenantID:      booking.TenantID,
		Amount:        input.Amount,
		Method:        input.Method,
		TransactionID: input.TransactionID,
		Status:        domain.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.payments.Create(ctx, payment)
}

// Complete marks a pending payment as settled and recomputes the booking's
// payment state from the sum of completed payments.
func (s *PaymentService) Complete(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	booking, err := s.guardBooking(ctx, actor, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	payment.Status = domain.PaymentStatusCompleted
	payment.PaidAt = &now
	payment.UpdatedAt = now
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.reconcileBooking(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to reconcile booking payment state")
	}

	s.logger.Info().
		Str("payment_id", payment.ID.String()).
		Str("booking_number", booking.BookingNumber).
		Float64("amount", payment.Amount).
		Msg("payment completed")
	return payment, nil
}

// Refund marks a completed payment as refunded and recomputes the booking.
func (s *PaymentService) Refund(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	booking, err := s.guardBooking(ctx, actor, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}

	payment.Status = domain.PaymentStatusRefunded
	payment.UpdatedAt = time.Now().UTC()
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.reconcileBooking(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to reconcile booking payment state")
	}
	return payment, nil
}

func (s *PaymentService) reconcileBooking(ctx context.Context, booking *domain.Booking) error {
	payments, err := s.payments.ListByBooking(ctx, booking.ID)
	if err != nil {
		return err
	}
	var paid, refunded float64
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentStatusCompleted:
			paid += p.Amount
		case domain.PaymentStatusRefunded:
			refunded += p.Amount
		}
	}

	state := domain.PaymentUnpaid
	switch {
	case paid >= booking.TotalAmount && booking.TotalAmount > 0:
		state = domain.PaymentPaid
	case paid > 0:
		state = domain.PaymentPartiallyPaid
	case refunded > 0:
		// Everything that was settled has been given back.
		state = domain.PaymentRefunded
	}

	booking.PaymentState = state
	booking.UpdatedAt = time.Now().UTC()
	return s.bookings.Update(ctx, booking)
}
