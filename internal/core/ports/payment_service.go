package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// CreatePaymentInput records money received against a booking.
type CreatePaymentInput struct {
	BookingID     uuid.UUID
	Amount        float64
	Method        string
	TransactionID string
}

// PaymentService records payments and keeps booking settlement state current.
type PaymentService interface {
	ListByBooking(ctx context.Context, actor *domain.User, bookingID uuid.UUID) ([]domain.Payment, error)
	Create(ctx context.Context, actor *domain.User, input CreatePaymentInput) (*domain.Payment, error)
	// Complete marks a pending payment as settled and recomputes the
	// booking's payment state.
	Complete(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Payment, error)
	// Refund marks a completed payment as refunded.
	Refund(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Payment, error)
}
