package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ListQuery holds the caller-controlled inputs of a listing.
type ListQuery struct {
	Search string
	Month  string // YYYY-MM; anything else selects the current month
	Page   Pagination
	Now    time.Time // zero means time.Now()
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService builds listings and their statistics for the transactional entities.
type ReportingService interface {
	// Summarize returns the current-month page of records together with the
	// month and year totals, their changes against the previous period, the
	// category and type breakdowns and the twelve-month series.
	// Any store failure fails the whole call with ErrDataAccess.
	Summarize(ctx context.Context, e Entity, q ListQuery) (*Summary, error)

	// GetRecord returns one live record or ErrNotFound.
	GetRecord(ctx context.Context, e Entity, id int64) (*Record, error)

	// ListCategories returns the live categories of an entity.
	ListCategories(ctx context.Context, e Entity) ([]Category, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	records RecordStore
	catalog CatalogLookup
	logger  *log.Logger
}

// NewReportingService constructs a ReportingService over the given backends.
func NewReportingService(records RecordStore, catalog CatalogLookup) ReportingService {
	return &reportingService{
		records: records,
		catalog: catalog,
		logger:  logging.Logger(logging.SourceReporting),
	}
}

func (s *reportingService) Summarize(ctx context.Context, e Entity, q ListQuery) (*Summary, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	filter := BuildFilter(q.Search)
	periods := ResolvePeriods(q.Month, now)
	page := q.Page.Clamp()
	start := time.Now()

	var agg Aggregation
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := s.records.FindPage(gctx, e, filter, periods.CurrentMonth, page)
		if err != nil {
			return fmt.Errorf("failed to fetch %s page: %w", e.Name, err)
		}
		agg.Records = recs
		return nil
	})

	g.Go(func() error {
		n, err := s.records.Count(gctx, e, filter, periods.CurrentMonth)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", e.Name, err)
		}
		agg.Count = n
		return nil
	})

	sums := []struct {
		label string
		r     DateRange
		dst   *decimal.Decimal
	}{
		{"current month", periods.CurrentMonth, &agg.TotalMonth},
		{"previous month", periods.PreviousMonth, &agg.TotalMonthPrev},
		{"current year", periods.CurrentYear, &agg.TotalYear},
		{"previous year", periods.PreviousYear, &agg.TotalYearPrev},
	}
	for _, sum := range sums {
		g.Go(func() error {
			total, err := s.records.SumTotal(gctx, e, filter, sum.r)
			if err != nil {
				return fmt.Errorf("failed to sum %s %s: %w", e.Name, sum.label, err)
			}
			*sum.dst = total
			return nil
		})
	}

	g.Go(func() error {
		cats, types, err := s.breakdowns(gctx, e, filter, periods.CurrentMonth)
		if err != nil {
			return err
		}
		agg.Categories, agg.Types = cats, types
		return nil
	})

	g.Go(func() error {
		months, err := s.records.SumByMonth(gctx, e, filter, periods.CurrentYear)
		if err != nil {
			return fmt.Errorf("failed to sum %s by month: %w", e.Name, err)
		}
		agg.Months = monthlySeries(periods.Year, months)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("summary failed", "entity", e.Name, "month", periods.MonthKey(), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDataAccess, err)
	}

	s.logger.Debug("summary built",
		"entity", e.Name,
		"month", periods.MonthKey(),
		"search", filter.HasSearch(),
		"page", page.Page,
		"rows", agg.Count,
		"duration", time.Since(start),
	)
	return AssembleSummary(e, periods, page, agg), nil
}

// breakdowns computes the category breakdown and derives the type breakdown
// from it. The two steps are sequential.
func (s *reportingService) breakdowns(ctx context.Context, e Entity, f Filter, r DateRange) ([]BreakdownItem, []BreakdownItem, error) {
	sums, err := s.records.SumByCategory(ctx, e, f, r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to group %s by category: %w", e.Name, err)
	}

	var catIDs []int64
	for _, cs := range sums {
		if cs.CategoryID != nil {
			catIDs = append(catIDs, *cs.CategoryID)
		}
	}
	cats := map[int64]Category{}
	if len(catIDs) > 0 {
		list, err := s.catalog.CategoriesByID(ctx, e, catIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load %s: %w", e.CategoryTable, err)
		}
		for _, c := range list {
			cats[c.ID] = c
		}
	}

	var typeIDs []int64
	seen := map[int64]bool{}
	for _, c := range cats {
		if c.TypeID != nil && !seen[*c.TypeID] {
			seen[*c.TypeID] = true
			typeIDs = append(typeIDs, *c.TypeID)
		}
	}
	types := map[int64]Type{}
	if len(typeIDs) > 0 {
		list, err := s.catalog.TypesByID(ctx, e, typeIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load %s: %w", e.TypeTable, err)
		}
		for _, t := range list {
			types[t.ID] = t
		}
	}

	return categoryBreakdown(sums, cats), typeBreakdown(sums, cats, types), nil
}

func (s *reportingService) GetRecord(ctx context.Context, e Entity, id int64) (*Record, error) {
	rec, err := s.records.FindByID(ctx, e, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to load %s %d: %w", ErrDataAccess, e.Name, id, err)
	}
	return rec, nil
}

func (s *reportingService) ListCategories(ctx context.Context, e Entity) ([]Category, error) {
	cats, err := s.catalog.ListCategories(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %w", ErrDataAccess, e.CategoryTable, err)
	}
	return cats, nil
}
