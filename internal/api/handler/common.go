package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// listResponse is the envelope for all paginated collections.
type listResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func newListResponse[T any](data []T, total int64, page ports.ListParams) listResponse[T] {
	page = page.Normalize()
	totalPages := int(total) / page.Limit
	if int(total)%page.Limit > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return listResponse[T]{
		Data: data,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: totalPages,
		},
	}
}

// queryPage reads the page and limit query parameters, tolerating garbage.
func queryPage(c echo.Context) ports.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.ListParams{Page: page, Limit: limit}.Normalize()
}
