package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

type createRoomTypeRequest struct {
	HotelID     string   `json:"hotel_id"   validate:"required,uuid4"`
	Name        string   `json:"name"       validate:"required"`
	Description string   `json:"description,omitempty"`
	BedType     string   `json:"bed_type"   validate:"required,oneof=single twin double queen king"`
	Capacity    int      `json:"capacity"   validate:"required,min=1"`
	BasePrice   float64  `json:"base_price" validate:"required,gt=0"`
	Amenities   []string `json:"amenities,omitempty"`
}

type updateRoomTypeRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	BedType     *string  `json:"bed_type,omitempty" validate:"omitempty,oneof=single twin double queen king"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=1"`
	BasePrice   *float64 `json:"base_price,omitempty" validate:"omitempty,gt=0"`
	Amenities   []string `json:"amenities,omitempty"`
}

type createRoomRequest struct {
	HotelID    string `json:"hotel_id"     validate:"required,uuid4"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid4"`
	Number     string `json:"number"       validate:"required"`
	Floor      int    `json:"floor,omitempty"`
}

type setRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance cleaning blocked"`
}

// ListRoomTypes returns the room categories of a hotel.
//
// @Summary      List room types of a hotel
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        hotel_id  path      string  true   "Hotel id"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse[domain.RoomType]
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /hotels/{hotel_id}/room-types [get]
func (h *RoomHandler) ListRoomTypes(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	hotelID, err := pathID(c, "hotel_id")
	if err != nil {
		return err
	}

	page := queryPage(c)
	types, total, err := h.service.ListRoomTypes(c.Request().Context(), actor, hotelID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(types, total, page))
}

// CreateRoomType adds a room category to a hotel.
//
// @Summary      Create a room type
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomTypeRequest  true  "Room type details"
// @Success      201   {object}  domain.RoomType
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /room-types [post]
func (h *RoomHandler) CreateRoomType(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createRoomTypeRequest
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

	rt, err := h.service.CreateRoomType(c.Request().Context(), actor, ports.CreateRoomTypeInput{
		HotelID:     hotelID,
		Name:        req.Name,
		Description: req.Description,
		BedType:     domain.BedType(req.BedType),
		Capacity:    req.Capacity,
		BasePrice:   req.BasePrice,
		Amenities:   req.Amenities,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rt)
}

// UpdateRoomType modifies a room category.
//
// @Summary      Update a room type
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Room type id"
// @Param        body  body      updateRoomTypeRequest  true  "Fields to change"
// @Success      200   {object}  domain.RoomType
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /room-types/{id} [put]
func (h *RoomHandler) UpdateRoomType(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateRoomTypeInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		BasePrice:   req.BasePrice,
		Amenities:   req.Amenities,
	}
	if req.BedType != nil {
		bed := domain.BedType(*req.BedType)
		input.BedType = &bed
	}

	rt, err := h.service.UpdateRoomType(c.Request().Context(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rt)
}

// DeleteRoomType soft-deletes a room category.
//
// @Summary      Delete a room type
// @Tags         rooms
// @Security     BearerAuth
// @Param        id  path  string  true  "Room type id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /room-types/{id} [delete]
func (h *RoomHandler) DeleteRoomType(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteRoomType(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRooms returns rooms filtered by hotel, type or status.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        hotel_id      query     string  false  "Filter by hotel"
// @Param        room_type_id  query     string  false  "Filter by room type"
// @Param        status        query     string  false  "Filter by status"
// @Success      200           {object}  listResponse[domain.Room]
// @Failure      401           {object}  errorResponse
// @Router       /rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	filter := ports.RoomFilter{Status: domain.RoomStatus(c.QueryParam("status"))}
	if raw := c.QueryParam("hotel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hotel_id")
		}
		filter.HotelID = &id
	}
	if raw := c.QueryParam("room_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_type_id")
		}
		filter.RoomTypeID = &id
	}

	rooms, total, err := h.service.ListRooms(c.Request().Context(), actor, filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(rooms, total, page))
}

// CreateRoom adds a physical room.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomRequest  true  "Room details"
// @Success      201   {object}  domain.Room
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createRoomRequest
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
	roomTypeID, err := uuid.Parse(req.RoomTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room_type_id")
	}

	room, err := h.service.CreateRoom(c.Request().Context(), actor, ports.CreateRoomInput{
		HotelID:    hotelID,
		RoomTypeID: roomTypeID,
		Number:     req.Number,
		Floor:      req.Floor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, room)
}

// SetRoomStatus updates the operational status of a room.
//
// @Summary      Set room status
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Room id"
// @Param        body  body      setRoomStatusRequest  true  "New status"
// @Success      200   {object}  domain.Room
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rooms/{id}/status [put]
func (h *RoomHandler) SetRoomStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req setRoomStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.service.SetRoomStatus(c.Request().Context(), actor, id, domain.RoomStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom soft-deletes a room.
//
// @Summary      Delete a room
// @Tags         rooms
// @Security     BearerAuth
// @Param        id  path  string  true  "Room id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteRoom(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
