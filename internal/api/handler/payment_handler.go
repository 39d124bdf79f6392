package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createPaymentRequest struct {
	BookingID     string  `json:"booking_id" validate:"required,uuid4"`
	Amount        float64 `json:"amount"     validate:"required,gt=0"`
	Method        string  `json:"method"     validate:"required,oneof=cash bank_transfer card zalopay momo"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// ListByBooking returns the payments recorded against a booking.
//
// @Summary      List payments of a booking
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking id"
// @Success      200         {array}   domain.Payment
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /bookings/{booking_id}/payments [get]
func (h *PaymentHandler) ListByBooking(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	payments, err := h.service.ListByBooking(c.Request().Context(), actor, bookingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Create records a payment against a booking in pending status.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking_id")
	}

	payment, err := h.service.Create(c.Request().Context(), actor, ports.CreatePaymentInput{
		BookingID:     bookingID,
		Amount:        req.Amount,
		Method:        req.Method,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// Complete settles a pending payment.
//
// @Summary      Complete a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment id"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /payments/{id}/complete [put]
func (h *PaymentHandler) Complete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.service.Complete(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Refund reverses a completed payment.
//
// @Summary      Refund a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment id"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /payments/{id}/refund [put]
func (h *PaymentHandler) Refund(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.service.Refund(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
