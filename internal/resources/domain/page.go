package domain

import (
	"errors"
	"math"
)

// MaxPageSize caps every listing; larger requests are silently reduced.
const MaxPageSize = 100

var ErrInvalidPagination = errors.New("page must be >= 0 and limit must be > 0")

// PageRequest is a validated offset window.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest rejects a negative page, a non-positive limit and a page whose
// offset does not fit in an int. The limit is capped before that check.
func NewPageRequest(page, limit int) (PageRequest, error) {
	if page < 0 || limit <= 0 {
		return PageRequest{}, ErrInvalidPagination
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page > math.MaxInt/limit {
		return PageRequest{}, ErrInvalidPagination
	}
	return PageRequest{Page: page, Limit: limit}, nil
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Limit
}

// Page is one window of a listing together with its position in the whole.
type Page[T any] struct {
	Content       []T
	Page          int
	Limit         int
	TotalElements int64
	TotalPages    int
	HasNext       bool
	HasPrevious   bool
}

// NewPage derives the totals; TotalPages is the ceiling of total/limit.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Limit:         req.Limit,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       req.Page < totalPages-1,
		HasPrevious:   req.Page > 0,
	}
}
