package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives the full pagination block from the page window and
// the total row count. hasNext is true iff page*limit < total.
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page)*int64(limit) < total,
		HasPrev:    page > 1,
	}
}

// Respond writes a success envelope.
func Respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// RespondPage writes a success envelope with a pagination block.
func RespondPage(c *fiber.Ctx, data any, p *Pagination) error {
	return c.JSON(Response{
		Success:    true,
		Data:       data,
		Pagination: p,
	})
}

// RespondWithError writes an error envelope. The status is derived from the
// AppError code; unknown error types become a generic 500 so internal detail
// never reaches the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}
	return c.Status(appErr.Status()).JSON(Response{
		Success: false,
		Error:   appErr.Code,
		Message: appErr.Message,
	})
}
