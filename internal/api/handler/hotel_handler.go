package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type HotelHandler struct {
	service ports.HotelService
}

func NewHotelHandler(service ports.HotelService) *HotelHandler {
	return &HotelHandler{service: service}
}

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type createHotelRequest struct {
	TenantID     *string            `json:"tenant_id,omitempty"`
	Name         string             `json:"name"    validate:"required"`
	Address      string             `json:"address" validate:"required"`
	City         string             `json:"city"    validate:"required"`
	Country      string             `json:"country" validate:"required"`
	PostalCode   string             `json:"postal_code,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	Email        string             `json:"email,omitempty" validate:"omitempty,email"`
	Website      string             `json:"website,omitempty"`
	Location     coordinatesRequest `json:"location"`
	Description  string             `json:"description,omitempty"`
	StarRating   int                `json:"star_rating,omitempty" validate:"omitempty,min=1,max=5"`
	CheckInTime  string             `json:"check_in_time,omitempty"`
	CheckOutTime string             `json:"check_out_time,omitempty"`
	Amenities    []string           `json:"amenities,omitempty"`
	Thumbnail    string             `json:"thumbnail,omitempty"`
	Gallery      []string           `json:"gallery,omitempty"`
}

type updateHotelRequest struct {
	Name        *string  `json:"name,omitempty"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	Website     *string  `json:"website,omitempty"`
	Description *string  `json:"description,omitempty"`
	StarRating  *int     `json:"star_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=draft pending published suspended maintenance archived"`
	IsActive    *bool    `json:"is_active,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Gallery     []string `json:"gallery,omitempty"`
}

// List returns hotels in the acting user's tenant scope.
//
// @Summary      List hotels
// @Tags         hotels
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Param        city    query     string  false  "Filter by city"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  listResponse[domain.Hotel]
// @Failure      401     {object}  errorResponse
// @Router       /hotels [get]
func (h *HotelHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	filter := ports.HotelFilter{
		Status: domain.HotelStatus(c.QueryParam("status")),
		City:   c.QueryParam("city"),
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
		}
		filter.TenantID = &id
	}

	hotels, total, err := h.service.List(c.Request().Context(), actor, filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(hotels, total, page))
}

// Get returns one hotel.
//
// @Summary      Get a hotel
// @Tags         hotels
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Hotel id"
// @Success      200  {object}  domain.Hotel
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /hotels/{id} [get]
func (h *HotelHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	hotel, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotel)
}

// Create registers a new hotel.
//
// @Summary      Create a hotel
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHotelRequest  true  "Hotel details"
// @Success      201   {object}  domain.Hotel
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /hotels [post]
func (h *HotelHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createHotelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateHotelInput{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		Location:     domain.Coordinates{Lat: req.Location.Lat, Lng: req.Location.Lng},
		Description:  req.Description,
		StarRating:   req.StarRating,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Amenities:    req.Amenities,
		Thumbnail:    req.Thumbnail,
		Gallery:      req.Gallery,
	}
	if req.TenantID != nil {
		id, err := uuid.Parse(*req.TenantID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
		}
		input.TenantID = id
	}

	hotel, err := h.service.Create(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hotel)
}

// Update modifies a hotel.
//
// @Summary      Update a hotel
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Hotel id"
// @Param        body  body      updateHotelRequest  true  "Fields to change"
// @Success      200   {object}  domain.Hotel
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /hotels/{id} [put]
func (h *HotelHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateHotelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateHotelInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
		StarRating:  req.StarRating,
		IsActive:    req.IsActive,
		Amenities:   req.Amenities,
		Thumbnail:   req.Thumbnail,
		Gallery:     req.Gallery,
	}
	if req.Status != nil {
		status := domain.HotelStatus(*req.Status)
		input.Status = &status
	}

	hotel, err := h.service.Update(c.Request().Context(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotel)
}

// Delete soft-deletes a hotel.
//
// @Summary      Delete a hotel
// @Tags         hotels
// @Security     BearerAuth
// @Param        id  path  string  true  "Hotel id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /hotels/{id} [delete]
func (h *HotelHandler) Delete(c echo.Context) error {
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
