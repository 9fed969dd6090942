package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/middleware"
	"ledgerly/internal/pagination"
	"ledgerly/internal/uuid"
	"ledgerly/internal/wire"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString("userID")
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseFlexibleTime accepts RFC 3339 or YYYY-MM-DD. Date-only values are
// local midnight.
func parseFlexibleTime(s string) (time.Time, error) {
	return wire.ParseDate(s, time.Local)
}

// bindPage reads page/page_size. Without either the listing is unpaged.
func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	page.Defaults()
	return page, nil
}

// bindJSON binds the request body and reports failures as INVALID_INPUT.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// respondSuccess writes {"status": "success", "message"?, "data"}.
func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"status": "success", "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondList writes a list as a plain data array. Paged requests also get
// the paging metadata.
func respondList[T any](c *gin.Context, page pagination.PageRequest, result *pagination.PageResponse[T]) {
	body := gin.H{"status": "success", "data": result.Data}
	if page.Paged() {
		body["pagination"] = PaginationMeta{
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalItems: result.TotalItems,
			TotalPages: result.TotalPages,
		}
	}
	c.JSON(http.StatusOK, body)
}

// PaginationMeta describes the page returned by a paged listing.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Status string      `json:"status" example:"error"`
	Error  ErrorDetail `json:"error"`
}

// MessageResponse represents a success response without data.
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}
