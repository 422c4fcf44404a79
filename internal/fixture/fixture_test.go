package fixture

import (
	"testing"
	"time"

	"backoffice/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	f, err := Load("testdata/seed.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"gastos", "ventas"}, f.EntityNames())

	gastos := f.Entities["gastos"]
	assert.Len(t, gastos.CoreTypes(), 2)
	cats := gastos.CoreCategories()
	require.Len(t, cats, 4)
	require.NotNil(t, cats[0].TypeID)
	assert.Equal(t, int64(1), *cats[0].TypeID)
	assert.Nil(t, cats[2].TypeID)

	statuses, err := gastos.CategoryStatuses()
	require.NoError(t, err)
	assert.True(t, statuses[1].IsLive())
	assert.False(t, statuses[4].IsLive())
	assert.Equal(t, core.StateInactive, statuses[4].StateID)

	recs, err := gastos.CoreRecords()
	require.NoError(t, err)
	require.Len(t, recs, 5)

	first := recs[0]
	assert.Equal(t, "G-001", first.Code)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), first.Fecha)
	assert.True(t, first.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, core.StateActive, first.StateID)
	assert.Equal(t, first.Fecha, first.CreatedAt)
	require.NotNil(t, first.Descripcion)
	assert.Equal(t, "Alquiler local", *first.Descripcion)

	assert.Equal(t, core.StateInactive, recs[3].StateID)
	require.NotNil(t, recs[4].DeletedAt)
	assert.False(t, recs[4].IsLive())
}

func TestLoad_RFC3339AndNumericTotal(t *testing.T) {
	f, err := Load("testdata/seed.yaml")
	require.NoError(t, err)

	recs, err := f.Entities["ventas"].CoreRecords()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, time.Date(2025, 2, 3, 15, 4, 5, 0, time.UTC), recs[0].Fecha)
	assert.Equal(t, time.Date(2025, 2, 3, 15, 10, 0, 0, time.UTC), recs[0].CreatedAt)
	assert.True(t, recs[0].Total.Equal(decimal.NewFromInt(1250)))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown entity", "entities:\n  planillas: {}\n"},
		{"not yaml", "entities: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestCoreRecords_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  RecordRow
	}{
		{"missing code", RecordRow{ID: 1, Fecha: "2025-01-01", Total: "1"}},
		{"bad date", RecordRow{ID: 1, Codigo: "X", Fecha: "01/02/2025", Total: "1"}},
		{"bad total", RecordRow{ID: 1, Codigo: "X", Fecha: "2025-01-01", Total: "abc"}},
		{"bad deleted_at", RecordRow{ID: 1, Codigo: "X", Fecha: "2025-01-01", Total: "1", DeletedAt: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EntityData{Records: []RecordRow{tt.row}}.CoreRecords()
			assert.Error(t, err)
		})
	}
}
