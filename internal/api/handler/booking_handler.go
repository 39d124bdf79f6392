package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/api/metrics"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRoomRequest struct {
	RoomID    string  `json:"room_id"    validate:"required,uuid4"`
	RateNight float64 `json:"rate_night" validate:"required,gt=0"`
}

type createBookingRequest struct {
	HotelID       string               `json:"hotel_id"    validate:"required,uuid4"`
	CustomerID    string               `json:"customer_id" validate:"required,uuid4"`
	CheckIn       time.Time            `json:"check_in"    validate:"required"`
	CheckOut      time.Time            `json:"check_out"   validate:"required"`
	AdultCount    int                  `json:"adult_count" validate:"required,min=1"`
	ChildrenCount int                  `json:"children_count,omitempty"`
	GuestName     string               `json:"guest_name,omitempty"`
	GuestEmail    string               `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone    string               `json:"guest_phone,omitempty"`
	SpecialReqs   string               `json:"special_requests,omitempty"`
	Note          string               `json:"note,omitempty"`
	DiscountAmt   float64              `json:"discount_amount,omitempty"`
	TaxAmount     float64              `json:"tax_amount,omitempty"`
	Channel       string               `json:"channel,omitempty"`
	Rooms         []bookingRoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

type updateBookingRequest struct {
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	AdultCount    *int       `json:"adult_count,omitempty" validate:"omitempty,min=1"`
	ChildrenCount *int       `json:"children_count,omitempty"`
	GuestName     *string    `json:"guest_name,omitempty"`
	GuestPhone    *string    `json:"guest_phone,omitempty"`
	SpecialReqs   *string    `json:"special_requests,omitempty"`
	Note          *string    `json:"note,omitempty"`
}

type transitionBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out completed cancelled"`
}

// List returns bookings in the acting user's tenant scope.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Param        hotel_id  query     string  false  "Filter by hotel"
// @Param        status    query     string  false  "Filter by status"
// @Param        from      query     string  false  "Check-in range start (RFC 3339)"
// @Param        to        query     string  false  "Check-in range end (RFC 3339)"
// @Success      200       {object}  listResponse[domain.Booking]
// @Failure      401       {object}  errorResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	filter := ports.BookingFilter{Status: domain.BookingStatus(c.QueryParam("status"))}
	if raw := c.QueryParam("hotel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hotel_id")
		}
		filter.HotelID = &id
	}
	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		filter.CustomerID = &id
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from")
		}
		filter.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to")
		}
		filter.To = &to
	}

	bookings, total, err := h.service.List(c.Request().Context(), actor, filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(bookings, total, page))
}

// Get returns one booking.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Create registers a new booking in pending status.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hotel_id")
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
	}

	rooms := make([]ports.BookingRoomInput, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		roomID, err := uuid.Parse(room.RoomID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
		}
		rooms = append(rooms, ports.BookingRoomInput{RoomID: roomID, RateNight: room.RateNight})
	}

	booking, err := h.service.Create(c.Request().Context(), actor, ports.CreateBookingInput{
		HotelID:       hotelID,
		CustomerID:    customerID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		AdultCount:    req.AdultCount,
		ChildrenCount: req.ChildrenCount,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		SpecialReqs:   req.SpecialReqs,
		Note:          req.Note,
		DiscountAmt:   req.DiscountAmt,
		TaxAmount:     req.TaxAmount,
		Channel:       req.Channel,
		Rooms:         rooms,
	})
	if err != nil {
		return err
	}

	channel := booking.Channel
	if channel == "" {
		channel = "direct"
	}
	metrics.BookingsCreatedTotal.WithLabelValues(channel).Inc()

	return c.JSON(http.StatusCreated, booking)
}

// Update modifies a pending or confirmed booking.
//
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "Fields to change"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateBookingInput{
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		AdultCount:    req.AdultCount,
		ChildrenCount: req.ChildrenCount,
		GuestName:     req.GuestName,
		GuestPhone:    req.GuestPhone,
		SpecialReqs:   req.SpecialReqs,
		Note:          req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Transition moves a booking along its lifecycle.
//
// @Summary      Change booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Booking id"
// @Param        body  body      transitionBookingRequest  true  "Target status"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /bookings/{id}/status [put]
func (h *BookingHandler) Transition(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req transitionBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	next := domain.BookingStatus(req.Status)
	booking, err := h.service.Transition(c.Request().Context(), actor, id, next)
	if err != nil {
		metrics.BookingTransitionsTotal.WithLabelValues(string(next), "invalid").Inc()
		return err
	}
	metrics.BookingTransitionsTotal.WithLabelValues(string(next), "ok").Inc()

	return c.JSON(http.StatusOK, booking)
}

// Delete soft-deletes a booking.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
