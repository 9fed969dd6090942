// Package pagination parses page query parameters and applies them to gorm
// queries. A zero PageSize means "everything", which is what the ledger
// snapshot loaders ask for.
package pagination

import (
	"math"

	"gorm.io/gorm"
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// All requests every row.
var All = PageRequest{}

// Defaults fills in page_size when only page was provided.
func (p *PageRequest) Defaults() {
	if p.Page != 0 && p.PageSize == 0 {
		p.PageSize = 20
	}
	if p.PageSize != 0 && p.Page == 0 {
		p.Page = 1
	}
}

// Paged reports whether the request limits the result set.
func (p PageRequest) Paged() bool {
	return p.PageSize > 0
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps a list of items with paging metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
// An unpaged request reports everything as a single page.
func NewPageResponse[T any](data []T, req PageRequest, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	if !req.Paged() {
		return PageResponse[T]{Data: data, Page: 1, PageSize: len(data), TotalItems: totalItems, TotalPages: 1}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: totalItems,
		TotalPages: int(math.Ceil(float64(totalItems) / float64(req.PageSize))),
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given
// page request. Unpaged requests are left untouched.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !req.Paged() {
			return db
		}
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
