package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type TenantHandler struct {
	service ports.TenantService
}

func NewTenantHandler(service ports.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

type createTenantRequest struct {
	Name         string `json:"name"          validate:"required"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Plan         string `json:"plan"          validate:"omitempty,oneof=free basic premium enterprise"`
}

type updateTenantRequest struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
	Plan         *string `json:"plan,omitempty"   validate:"omitempty,oneof=free basic premium enterprise"`
}

// List returns all tenants. Super admin only.
//
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listResponse[domain.Tenant]
// @Failure      403    {object}  errorResponse
// @Router       /tenants [get]
func (h *TenantHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	tenants, total, err := h.service.List(c.Request().Context(), actor, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(tenants, total, page))
}

// Get returns one tenant.
//
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tenant id"
// @Success      200  {object}  domain.Tenant
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Create registers a new tenant organization. Super admin only.
//
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTenantRequest  true  "Tenant details"
// @Success      201   {object}  domain.Tenant
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenant, err := h.service.Create(c.Request().Context(), actor, ports.CreateTenantInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Plan:         domain.SubscriptionPlan(req.Plan),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tenant)
}

// Update modifies a tenant. Super admin only.
//
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Tenant id"
// @Param        body  body      updateTenantRequest  true  "Fields to change"
// @Success      200   {object}  domain.Tenant
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateTenantInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if req.Status != nil {
		status := domain.TenantStatus(*req.Status)
		input.Status = &status
	}
	if req.Plan != nil {
		plan := domain.SubscriptionPlan(*req.Plan)
		input.Plan = &plan
	}

	tenant, err := h.service.Update(c.Request().Context(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Delete soft-deletes a tenant. Super admin only.
//
// @Summary      Delete a tenant
// @Tags         tenants
// @Security     BearerAuth
// @Param        id  path  string  true  "Tenant id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c echo.Context) error {
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
