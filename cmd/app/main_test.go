package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("MEMSTORE_SEED_FILE", "../../internal/fixture/testdata/seed.yaml")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newApp()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"app"}, args...))
	return out.String(), err
}

func TestReport(t *testing.T) {
	out, err := runApp(t, "report", "--month", "2025-02", "gastos")
	require.NoError(t, err)

	assert.Contains(t, out, "GASTOS")
	assert.Contains(t, out, "Month    : 2025-02 (previous 2025-01)")
	assert.Contains(t, out, "G-002")
	assert.Contains(t, out, "G-001")
	assert.NotContains(t, out, "G-004")
	assert.Contains(t, out, "300.00")
	assert.Contains(t, out, "febrero")
}

func TestReport_UnknownEntity(t *testing.T) {
	_, err := runApp(t, "report", "planillas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity")
}

func TestReport_MissingEntity(t *testing.T) {
	_, err := runApp(t, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity is required")
}

func TestRecordAndCategories(t *testing.T) {
	out, err := runApp(t, "record", "ventas", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "V-001")
	assert.Contains(t, out, "1250.00")

	_, err = runApp(t, "record", "ventas", "abc")
	assert.Error(t, err)

	out, err = runApp(t, "categories", "gastos")
	require.NoError(t, err)
	assert.Contains(t, out, "Alquiler")
	assert.Contains(t, out, "Papeleria")
}

func TestEntities(t *testing.T) {
	out, err := runApp(t, "entities")
	require.NoError(t, err)
	assert.Equal(t, "compras\ngastos\ningresos\ncomprobantes\nventas\n", out)
}
