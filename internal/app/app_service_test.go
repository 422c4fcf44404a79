package app_test

import (
	"context"
	"testing"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) app.ApplicationService {
	t.Helper()
	svc, closeFn, err := app.Open(context.Background(), &config.Config{
		DataBackend:      config.BackendMemory,
		MemstoreSeedFile: "../fixture/testdata/seed.yaml",
	})
	require.NoError(t, err)
	t.Cleanup(closeFn)
	return svc
}

func TestListEntities(t *testing.T) {
	svc := openMemory(t)
	assert.Equal(t, []string{"compras", "gastos", "ingresos", "comprobantes", "ventas"}, svc.ListEntities())
}

func TestListRecords(t *testing.T) {
	svc := openMemory(t)

	res, err := svc.ListRecords(context.Background(), app.ListRecordsRequest{
		Entity: "gastos", Month: "2025-02", Page: "1", Limit: "1",
	})
	require.NoError(t, err)

	sum := res.Summary
	assert.Equal(t, "gastos", sum.Entity)
	require.Len(t, sum.Data, 1)
	assert.Equal(t, "G-002", sum.Data[0].Code)
	assert.Equal(t, core.PageInfo{Page: 1, Limit: 1, Total: 2, Pages: 2}, sum.Pagination)
	assert.True(t, sum.Statistics.TotalMonth.Equal(sum.Statistics.TotalMonthPrev.Add(sum.Statistics.DiferenciaMensual)))
}

func TestListRecords_UnknownEntity(t *testing.T) {
	svc := openMemory(t)

	_, err := svc.ListRecords(context.Background(), app.ListRecordsRequest{Entity: "planillas"})
	assert.ErrorIs(t, err, core.ErrUnknownEntity)

	_, err = svc.GetRecord(context.Background(), "planillas", 1)
	assert.ErrorIs(t, err, core.ErrUnknownEntity)

	_, err = svc.ListCategories(context.Background(), "planillas")
	assert.ErrorIs(t, err, core.ErrUnknownEntity)
}

func TestGetRecordAndCategories(t *testing.T) {
	svc := openMemory(t)
	ctx := context.Background()

	rec, err := svc.GetRecord(ctx, "ventas", 1)
	require.NoError(t, err)
	assert.Equal(t, "V-001", rec.Record.Code)

	_, err = svc.GetRecord(ctx, "gastos", 5)
	assert.ErrorIs(t, err, core.ErrNotFound)

	cats, err := svc.ListCategories(ctx, "gastos")
	require.NoError(t, err)
	assert.Len(t, cats.Categories, 3)

	assert.NoError(t, svc.Ping(ctx))
}

func TestOpen_Errors(t *testing.T) {
	_, _, err := app.Open(context.Background(), &config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	_, _, err = app.Open(context.Background(), &config.Config{
		DataBackend:      config.BackendMemory,
		MemstoreSeedFile: "does-not-exist.yaml",
	})
	assert.Error(t, err)
}
