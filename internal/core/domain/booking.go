package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// validBookingTransitions defines the allowed state machine transitions.
var validBookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {BookingCompleted},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validBookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentState tracks how much of a booking has been settled.
type PaymentState string

const (
	PaymentUnpaid        PaymentState = "unpaid"
	PaymentPartiallyPaid PaymentState = "partially_paid"
	PaymentPaid          PaymentState = "paid"
	PaymentRefunded      PaymentState = "refunded"
)

// BookingRoom links a booking to one booked room at an agreed nightly rate.
type BookingRoom struct {
	RoomID    uuid.UUID `json:"room_id" bson:"room_id"`
	RateNight float64   `json:"rate_night" bson:"rate_night"`
}

// Booking is the core aggregate root of the reservation flow.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	HotelID       uuid.UUID     `json:"hotel_id"`
	TenantID      uuid.UUID     `json:"tenant_id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	BookingNumber string        `json:"booking_number"`
	CheckIn       time.Time     `json:"check_in"`
	CheckOut      time.Time     `json:"check_out"`
	Status        BookingStatus `json:"status"`
	AdultCount    int           `json:"adult_count"`
	ChildrenCount int           `json:"children_count"`
	GuestName     string        `json:"guest_name,omitempty"`
	GuestEmail    string        `json:"guest_email,omitempty"`
	GuestPhone    string        `json:"guest_phone,omitempty"`
	SpecialReqs   string        `json:"special_requests,omitempty"`
	Note          string        `json:"note,omitempty"`
	TotalAmount   float64       `json:"total_amount"`
	DiscountAmt   float64       `json:"discount_amount"`
	TaxAmount     float64       `json:"tax_amount"`
	PaymentState  PaymentState  `json:"payment_state"`
	Channel       string        `json:"channel,omitempty"`
	Rooms         []BookingRoom `json:"rooms"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	DeletedAt     *time.Time    `json:"-"`
}

// Nights returns the number of nights between check-in and check-out.
// A partial day counts as a full night, so any positive stay is at least one.
func (b *Booking) Nights() int {
	d := b.CheckOut.Sub(b.CheckIn)
	if d <= 0 {
		return 0
	}
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}

// CanBeCancelled reports whether the booking may still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(BookingCancelled)
}

// CanBeModified reports whether booking details may still be edited.
func (b *Booking) CanBeModified() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
