package core

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 200

	// MaxPage keeps (page-1)*limit within int for every valid limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Pagination is a clamped page request.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination parses raw query values. Unparseable values take the
// defaults; parsed values are clamped to page in [1, MaxPage] and limit in
// [1, MaxLimit].
func NewPagination(pageRaw, limitRaw string) Pagination {
	page, err := strconv.Atoi(pageRaw)
	if err != nil {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil {
		limit = DefaultLimit
	}
	return Pagination{Page: page, Limit: limit}.Clamp()
}

// Clamp returns p with both fields forced into their valid ranges.
func (p Pagination) Clamp() Pagination {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows skipped before the page starts. It saturates
// at math.MaxInt for unclamped values and is never negative.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Pages returns ceil(total / limit).
func (p Pagination) Pages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}
