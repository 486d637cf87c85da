package response

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ops-admin-backend/internal/common/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Envelope is the body shape shared by every endpoint.
// @Description Uniform response envelope
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Pagination describes one page of a list.
type Pagination struct {
	Page       int  `json:"page" example:"1"`
	Limit      int  `json:"limit" example:"10"`
	Total      int  `json:"total" example:"25"`
	TotalPages int  `json:"totalPages" example:"3"`
	HasMore    bool `json:"hasMore" example:"true"`
}

// Page is the data payload of list endpoints.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// PageParams is the parsed page/limit pair of a list request.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		// same as page*limit < total without the overflow
		HasMore: page < totalPages,
	}
}

func NewPage[T any](items []T, params PageParams, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Pagination: NewPagination(params.Page, params.Limit, total),
	}
}

// ParsePageParams reads page and limit from the query string. The limit may arrive as
// "limit" or "pageSize"; values above MaxLimit are capped.
func ParsePageParams(c *gin.Context) (PageParams, error) {
	params := PageParams{Page: DefaultPage, Limit: DefaultLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, apperrors.NewValidationError("page", "must be an integer >= 1")
		}
		params.Page = page
	}

	field, raw := "limit", c.Query("limit")
	if raw == "" {
		field, raw = "pageSize", c.Query("pageSize")
	}
	if raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return params, apperrors.NewValidationError(field, "must be an integer >= 1")
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		params.Limit = limit
	}

	// the row offset (page-1)*limit must fit in an int
	if params.Page-1 > math.MaxInt/params.Limit {
		return params, apperrors.NewValidationError("page", "is too large")
	}

	return params, nil
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}
