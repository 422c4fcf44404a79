package memstore

import (
	"context"
	"math"
	"testing"
	"time"

	"backoffice/internal/core"
	"backoffice/internal/fixture"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	f, err := fixture.Load("../fixture/testdata/seed.yaml")
	require.NoError(t, err)
	s, err := FromFixture(f)
	require.NoError(t, err)
	return s
}

func february() core.DateRange {
	return core.NewPeriodSet(2025, time.February).CurrentMonth
}

func gastos(t *testing.T) core.Entity {
	t.Helper()
	e, err := core.LookupEntity("gastos")
	require.NoError(t, err)
	return e
}

func TestStore_OnlyLiveRecords(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	e := gastos(t)

	n, err := s.Count(ctx, e, core.BuildFilter(""), february())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "inactive and deleted rows must be excluded")

	total, err := s.SumTotal(ctx, e, core.BuildFilter(""), february())
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(300)), "got %s", total)
}

func TestStore_FindPageOrderAndOffset(t *testing.T) {
	s := New()
	e := gastos(t)
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		s.AddRecord(e.Name, core.Record{
			Code:      "G-" + string(rune('0'+i)),
			Fecha:     base.AddDate(0, 0, i),
			Total:     decimal.NewFromInt(int64(i)),
			StateID:   core.StateActive,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	page, err := s.FindPage(context.Background(), e, core.BuildFilter(""), february(), core.Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(2), page[1].ID)

	page, err = s.FindPage(context.Background(), e, core.BuildFilter(""), february(), core.Pagination{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestStore_SearchMatchesCategoryDescription(t *testing.T) {
	s := seeded(t)
	e := gastos(t)

	page, err := s.FindPage(context.Background(), e, core.BuildFilter("papeleria"), february(), core.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "G-002", page[0].Code)
	require.NotNil(t, page[0].Category)
	assert.Equal(t, "Papeleria", page[0].Category.Descripcion)
}

func TestStore_SumByCategoryPutsNullGroupLast(t *testing.T) {
	s := seeded(t)
	e := gastos(t)
	s.AddRecord(e.Name, core.Record{
		Code: "G-100", Fecha: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		Total: decimal.NewFromInt(5), StateID: core.StateActive,
	})

	sums, err := s.SumByCategory(context.Background(), e, core.BuildFilter(""), february())
	require.NoError(t, err)
	require.Len(t, sums, 3)
	assert.Equal(t, int64(1), *sums[0].CategoryID)
	assert.Equal(t, int64(2), *sums[1].CategoryID)
	assert.Nil(t, sums[2].CategoryID)
	assert.True(t, sums[2].Total.Equal(decimal.NewFromInt(5)))
}

func TestStore_SumByMonth(t *testing.T) {
	s := seeded(t)
	e := gastos(t)

	sums, err := s.SumByMonth(context.Background(), e, core.BuildFilter(""), core.NewPeriodSet(2025, time.February).CurrentYear)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, time.January, sums[0].Month)
	assert.True(t, sums[0].Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, time.February, sums[1].Month)
	assert.True(t, sums[1].Total.Equal(decimal.NewFromInt(300)))
}

func TestStore_FindByID(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	e := gastos(t)

	rec, err := s.FindByID(ctx, e, 1)
	require.NoError(t, err)
	assert.Equal(t, "G-001", rec.Code)

	for _, id := range []int64{4, 5, 999} {
		_, err := s.FindByID(ctx, e, id)
		assert.ErrorIs(t, err, core.ErrNotFound, "id %d", id)
	}
}

func TestStore_Catalog(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	e := gastos(t)

	cats, err := s.CategoriesByID(ctx, e, []int64{2, 42})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Papeleria", cats[0].Descripcion)

	types, err := s.TypesByID(ctx, e, []int64{1})
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Fijos", types[0].Descripcion)

	all, err := s.ListCategories(ctx, e)
	require.NoError(t, err)
	require.Len(t, all, 3, "retired categories are not listed")
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[2].ID)

	retired, err := s.CategoriesByID(ctx, e, []int64{4})
	require.NoError(t, err)
	require.Len(t, retired, 1, "lookups by id still resolve retired categories")
	assert.Equal(t, "Obsoleta", retired[0].Descripcion)
}

func TestStore_RetireCategory(t *testing.T) {
	s := New()
	e := gastos(t)
	s.AddCategory(e.Name, core.Category{ID: 1, Descripcion: "Alquiler"})
	s.AddCategory(e.Name, core.Category{ID: 2, Descripcion: "Luz"})
	s.RetireCategory(e.Name, 1)

	cats, err := s.ListCategories(context.Background(), e)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Luz", cats[0].Descripcion)
}

func TestStore_FindPageFarBeyondEnd(t *testing.T) {
	s := seeded(t)
	e := gastos(t)

	for _, p := range []core.Pagination{
		core.NewPagination("46116860184273881", "200"),
		{Page: math.MaxInt, Limit: core.MaxLimit},
		{Page: 1, Limit: -5},
	} {
		page, err := s.FindPage(context.Background(), e, core.BuildFilter(""), february(), p)
		require.NoError(t, err)
		assert.Empty(t, page)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Count(ctx, gastos(t), core.BuildFilter(""), february())
	assert.ErrorIs(t, err, context.Canceled)
}
