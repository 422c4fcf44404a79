// Package memstore is an in-memory record store and catalog, used when
// DATA_BACKEND=memory and as the store double in tests.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"backoffice/internal/core"
	"backoffice/internal/fixture"

	"github.com/shopspring/decimal"
)

type table struct {
	records    []core.Record
	categories map[int64]core.Category
	retired    map[int64]bool // inactive or soft-deleted categories
	types      map[int64]core.Type
}

// Store implements core.RecordStore and core.CatalogLookup.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

// New returns an empty store.
func New() *Store {
	return &Store{tables: map[string]*table{}}
}

// FromFixture returns a store populated from a fixture file.
func FromFixture(f *fixture.File) (*Store, error) {
	s := New()
	for _, name := range f.EntityNames() {
		data := f.Entities[name]
		for _, t := range data.CoreTypes() {
			s.AddType(name, t)
		}
		statuses, err := data.CategoryStatuses()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, c := range data.CoreCategories() {
			s.AddCategory(name, c)
			if !statuses[c.ID].IsLive() {
				s.RetireCategory(name, c.ID)
			}
		}
		recs, err := data.CoreRecords()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, r := range recs {
			s.AddRecord(name, r)
		}
	}
	return s, nil
}

func (s *Store) tableFor(entity string) *table {
	t, ok := s.tables[entity]
	if !ok {
		t = &table{
			categories: map[int64]core.Category{},
			retired:    map[int64]bool{},
			types:      map[int64]core.Type{},
		}
		s.tables[entity] = t
	}
	return t
}

// AddRecord stores r under the given entity key. A zero ID is replaced by the next free id.
func (s *Store) AddRecord(entity string, r core.Record) core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tableFor(entity)
	if r.ID == 0 {
		r.ID = int64(len(t.records) + 1)
		for _, existing := range t.records {
			if existing.ID >= r.ID {
				r.ID = existing.ID + 1
			}
		}
	}
	t.records = append(t.records, r)
	return r
}

func (s *Store) AddCategory(entity string, c core.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableFor(entity).categories[c.ID] = c
}

// RetireCategory hides a category from ListCategories. Breakdown lookups by
// id still resolve it, since old records may reference it.
func (s *Store) RetireCategory(entity string, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableFor(entity).retired[id] = true
}

func (s *Store) AddType(entity string, typ core.Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableFor(entity).types[typ.ID] = typ
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// matching returns copies of the records of e that satisfy f with fecha in r.
// Callers must hold at least a read lock.
func (s *Store) matching(e core.Entity, f core.Filter, r core.DateRange) []core.Record {
	t, ok := s.tables[e.Name]
	if !ok {
		return nil
	}
	var out []core.Record
	for _, rec := range t.records {
		if !r.Contains(rec.Fecha) {
			continue
		}
		var desc string
		if rec.CategoryID != nil {
			desc = t.categories[*rec.CategoryID].Descripcion
		}
		if f.Matches(e, rec, desc) {
			out = append(out, s.withCategory(t, rec))
		}
	}
	return out
}

func (s *Store) withCategory(t *table, rec core.Record) core.Record {
	if rec.CategoryID != nil {
		if c, ok := t.categories[*rec.CategoryID]; ok {
			rec.Category = &c
		}
	}
	return rec
}

func (s *Store) FindPage(ctx context.Context, e core.Entity, f core.Filter, r core.DateRange, p core.Pagination) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	recs := s.matching(e, f, r)
	s.mu.RUnlock()

	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID > recs[j].ID
	})

	start := min(max(p.Offset(), 0), len(recs))
	end := start + min(max(p.Limit, 0), len(recs)-start)
	return slices.Clone(recs[start:end]), nil
}

func (s *Store) Count(ctx context.Context, e core.Entity, f core.Filter, r core.DateRange) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matching(e, f, r))), nil
}

func (s *Store) SumTotal(ctx context.Context, e core.Entity, f core.Filter, r core.DateRange) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, rec := range s.matching(e, f, r) {
		total = total.Add(rec.Total)
	}
	return total, nil
}

func (s *Store) SumByCategory(ctx context.Context, e core.Entity, f core.Filter, r core.DateRange) ([]core.CategorySum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := map[int64]decimal.Decimal{}
	var none *decimal.Decimal
	for _, rec := range s.matching(e, f, r) {
		if rec.CategoryID == nil {
			t := rec.Total
			if none != nil {
				t = t.Add(*none)
			}
			none = &t
			continue
		}
		byID[*rec.CategoryID] = byID[*rec.CategoryID].Add(rec.Total)
	}

	sums := make([]core.CategorySum, 0, len(byID)+1)
	for id, total := range byID {
		sums = append(sums, core.CategorySum{CategoryID: &id, Total: total})
	}
	sort.Slice(sums, func(i, j int) bool { return *sums[i].CategoryID < *sums[j].CategoryID })
	if none != nil {
		sums = append(sums, core.CategorySum{Total: *none})
	}
	return sums, nil
}

func (s *Store) SumByMonth(ctx context.Context, e core.Entity, f core.Filter, r core.DateRange) ([]core.MonthSum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals [12]decimal.Decimal
	var seen [12]bool
	for _, rec := range s.matching(e, f, r) {
		m := rec.Fecha.UTC().Month()
		totals[m-1] = totals[m-1].Add(rec.Total)
		seen[m-1] = true
	}

	var sums []core.MonthSum
	for i, ok := range seen {
		if ok {
			sums = append(sums, core.MonthSum{Month: time.Month(i + 1), Total: totals[i]})
		}
	}
	return sums, nil
}

func (s *Store) FindByID(ctx context.Context, e core.Entity, id int64) (*core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tables[e.Name]; ok {
		for _, rec := range t.records {
			if rec.ID == id && rec.IsLive() {
				rec = s.withCategory(t, rec)
				return &rec, nil
			}
		}
	}
	return nil, fmt.Errorf("%s %d: %w", e.Name, id, core.ErrNotFound)
}

func (s *Store) CategoriesByID(ctx context.Context, e core.Entity, ids []int64) ([]core.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []core.Category{}
	if t, ok := s.tables[e.Name]; ok {
		for _, id := range ids {
			if c, ok := t.categories[id]; ok {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (s *Store) TypesByID(ctx context.Context, e core.Entity, ids []int64) ([]core.Type, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []core.Type{}
	if t, ok := s.tables[e.Name]; ok {
		for _, id := range ids {
			if typ, ok := t.types[id]; ok {
				out = append(out, typ)
			}
		}
	}
	return out, nil
}

func (s *Store) ListCategories(ctx context.Context, e core.Entity) ([]core.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []core.Category{}
	if t, ok := s.tables[e.Name]; ok {
		for id, c := range t.categories {
			if !t.retired[id] {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
