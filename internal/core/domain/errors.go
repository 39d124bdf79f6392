package domain

import "errors"

// Identity and access errors.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("incorrect password")
	ErrResetTicketInvalid = errors.New("invalid or expired password reset token")
)

// Resource errors.
var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrHotelNotFound     = errors.New("hotel not found")
	ErrRoomTypeNotFound  = errors.New("room type not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomExists        = errors.New("room number already exists")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerExists    = errors.New("customer already exists")
	ErrFollowerNotFound  = errors.New("follower not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
)
