package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySum is the total of one category group. CategoryID is nil for
// records without a category.
type CategorySum struct {
	CategoryID *int64
	Total      decimal.Decimal
}

// MonthSum is the total of one calendar month.
type MonthSum struct {
	Month time.Month
	Total decimal.Decimal
}

// RecordStore is the query surface the reporting pipeline needs from a
// persistence backend. Every method applies the filter, including its
// live-record rules, and restricts fecha to the given range.
type RecordStore interface {
	// FindPage returns one page of records ordered by created_at DESC, id DESC.
	FindPage(ctx context.Context, e Entity, f Filter, r DateRange, p Pagination) ([]Record, error)

	// Count returns the number of matching records.
	Count(ctx context.Context, e Entity, f Filter, r DateRange) (int64, error)

	// SumTotal returns the sum of total over matching records, 0 when none match.
	SumTotal(ctx context.Context, e Entity, f Filter, r DateRange) (decimal.Decimal, error)

	// SumByCategory groups matching records by id_categoria.
	SumByCategory(ctx context.Context, e Entity, f Filter, r DateRange) ([]CategorySum, error)

	// SumByMonth groups matching records by the UTC calendar month of fecha.
	// Months without records may be omitted.
	SumByMonth(ctx context.Context, e Entity, f Filter, r DateRange) ([]MonthSum, error)

	// FindByID returns a live record or ErrNotFound.
	FindByID(ctx context.Context, e Entity, id int64) (*Record, error)
}

// CatalogLookup resolves category and type labels.
type CatalogLookup interface {
	// CategoriesByID returns the categories with the given ids; unknown ids are skipped.
	CategoriesByID(ctx context.Context, e Entity, ids []int64) ([]Category, error)

	// TypesByID returns the types with the given ids; unknown ids are skipped.
	TypesByID(ctx context.Context, e Entity, ids []int64) ([]Type, error)

	// ListCategories returns the live categories of an entity ordered by id.
	ListCategories(ctx context.Context, e Entity) ([]Category, error)
}
