package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ── Summary types ─────────────────────────────────────────────────────────────

// BreakdownItem is one group of a category or type breakdown. ID and
// Descripcion are nil for the group of records without a category (or, in
// the type breakdown, whose category has no type).
type BreakdownItem struct {
	ID          *int64
	Descripcion *string
	Total       decimal.Decimal
	Porcentaje  decimal.Decimal // share of the current month total, 2 decimals
}

// MonthTotal is one entry of the yearly series.
type MonthTotal struct {
	Month     string // YYYY-MM
	MonthName string
	Total     decimal.Decimal
}

// Statistics carries the aggregate figures of a listing.
// Differences are unrounded; percentage changes are rounded to 2 decimals.
type Statistics struct {
	TotalRegistros          int64
	TotalMonth              decimal.Decimal
	TotalMonthPrev          decimal.Decimal
	TotalYear               decimal.Decimal
	TotalYearPrev           decimal.Decimal
	DiferenciaMensual       decimal.Decimal
	DiferenciaAnual         decimal.Decimal
	PorcentajeCambioMensual decimal.Decimal
	PorcentajeCambioAnual   decimal.Decimal
	Categorias              []BreakdownItem
	Tipos                   []BreakdownItem
	TotalsMonths            []MonthTotal
}

// PageInfo describes the returned page.
type PageInfo struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

// Meta echoes the resolved months.
type Meta struct {
	Month     string
	PrevMonth string
}

// Summary is the full result of a listing request.
type Summary struct {
	Entity     string
	Data       []Record
	Statistics Statistics
	Pagination PageInfo
	Meta       Meta
}

// Aggregation holds the raw fan-out results. Breakdown percentages are not
// yet computed.
type Aggregation struct {
	Records        []Record
	Count          int64
	TotalMonth     decimal.Decimal
	TotalMonthPrev decimal.Decimal
	TotalYear      decimal.Decimal
	TotalYearPrev  decimal.Decimal
	Categories     []BreakdownItem
	Types          []BreakdownItem
	Months         []MonthTotal
}

// ── Assembly ──────────────────────────────────────────────────────────────────

// AssembleSummary merges an aggregation into the response shape. It performs no I/O.
func AssembleSummary(e Entity, periods PeriodSet, p Pagination, agg Aggregation) *Summary {
	data := agg.Records
	if data == nil {
		data = []Record{}
	}

	return &Summary{
		Entity: e.Name,
		Data:   data,
		Statistics: Statistics{
			TotalRegistros:          agg.Count,
			TotalMonth:              agg.TotalMonth,
			TotalMonthPrev:          agg.TotalMonthPrev,
			TotalYear:               agg.TotalYear,
			TotalYearPrev:           agg.TotalYearPrev,
			DiferenciaMensual:       agg.TotalMonth.Sub(agg.TotalMonthPrev),
			DiferenciaAnual:         agg.TotalYear.Sub(agg.TotalYearPrev),
			PorcentajeCambioMensual: RoundPercent(PercentChange(agg.TotalMonth, agg.TotalMonthPrev)),
			PorcentajeCambioAnual:   RoundPercent(PercentChange(agg.TotalYear, agg.TotalYearPrev)),
			Categorias:              withPercentages(agg.Categories, agg.TotalMonth),
			Tipos:                   withPercentages(agg.Types, agg.TotalMonth),
			TotalsMonths:            agg.Months,
		},
		Pagination: PageInfo{
			Page:  p.Page,
			Limit: p.Limit,
			Total: agg.Count,
			Pages: p.Pages(agg.Count),
		},
		Meta: Meta{
			Month:     periods.MonthKey(),
			PrevMonth: periods.PrevMonthKey(),
		},
	}
}

// withPercentages sets each item's share of whole, rounded to two decimals so
// that the shares add up to the rounded total (at most 100). Leftover cents go
// to the items with the largest rounding remainders; on equal remainders the
// earlier item wins, so equal groups may differ by 0.01 (three equal groups
// get 33.34, 33.33 and 33.33 in breakdown order).
func withPercentages(items []BreakdownItem, whole decimal.Decimal) []BreakdownItem {
	parts := make([]decimal.Decimal, len(items))
	for i, it := range items {
		parts[i] = it.Total
	}
	shares := apportion(parts, whole)

	out := make([]BreakdownItem, len(items))
	for i, it := range items {
		it.Porcentaje = shares[i]
		out[i] = it
	}
	return out
}

// ── Breakdown construction ────────────────────────────────────────────────────

// categoryBreakdown merges category sums into items ordered by id, with the
// uncategorized group last.
func categoryBreakdown(sums []CategorySum, cats map[int64]Category) []BreakdownItem {
	groups := map[int64]decimal.Decimal{}
	var none *decimal.Decimal
	for _, s := range sums {
		if s.CategoryID == nil {
			t := s.Total
			if none != nil {
				t = t.Add(*none)
			}
			none = &t
			continue
		}
		groups[*s.CategoryID] = groups[*s.CategoryID].Add(s.Total)
	}

	items := make([]BreakdownItem, 0, len(groups)+1)
	for id, total := range groups {
		item := BreakdownItem{ID: ptr(id), Total: total}
		if c, ok := cats[id]; ok {
			item.Descripcion = ptr(c.Descripcion)
		}
		items = append(items, item)
	}
	sortBreakdown(items)
	if none != nil {
		items = append(items, BreakdownItem{Total: *none})
	}
	return items
}

// typeBreakdown regroups category sums by the type of each category.
// Uncategorized records and categories without a type share the nil bucket.
func typeBreakdown(sums []CategorySum, cats map[int64]Category, types map[int64]Type) []BreakdownItem {
	groups := map[int64]decimal.Decimal{}
	var none *decimal.Decimal
	for _, s := range sums {
		var typeID *int64
		if s.CategoryID != nil {
			if c, ok := cats[*s.CategoryID]; ok {
				typeID = c.TypeID
			}
		}
		if typeID == nil {
			t := s.Total
			if none != nil {
				t = t.Add(*none)
			}
			none = &t
			continue
		}
		groups[*typeID] = groups[*typeID].Add(s.Total)
	}

	items := make([]BreakdownItem, 0, len(groups)+1)
	for id, total := range groups {
		item := BreakdownItem{ID: ptr(id), Total: total}
		if t, ok := types[id]; ok {
			item.Descripcion = ptr(t.Descripcion)
		}
		items = append(items, item)
	}
	sortBreakdown(items)
	if none != nil {
		items = append(items, BreakdownItem{Total: *none})
	}
	return items
}

// monthlySeries expands month sums into twelve entries, January first.
func monthlySeries(year int, sums []MonthSum) []MonthTotal {
	var totals [12]decimal.Decimal
	for _, s := range sums {
		if s.Month < time.January || s.Month > time.December {
			continue
		}
		totals[s.Month-1] = totals[s.Month-1].Add(s.Total)
	}

	series := make([]MonthTotal, 12)
	for i := range series {
		m := time.Month(i + 1)
		series[i] = MonthTotal{
			Month:     monthKey(year, m),
			MonthName: MonthName(m),
			Total:     totals[i],
		}
	}
	return series
}

func sortBreakdown(items []BreakdownItem) {
	sort.Slice(items, func(i, j int) bool { return *items[i].ID < *items[j].ID })
}

func ptr[T any](v T) *T {
	return &v
}
