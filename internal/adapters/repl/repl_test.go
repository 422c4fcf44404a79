package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"backoffice/internal/app"
	"backoffice/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, lines ...string) string {
	t.Helper()
	svc, closeFn, err := app.Open(context.Background(), &config.Config{
		DataBackend:      config.BackendMemory,
		MemstoreSeedFile: "../../fixture/testdata/seed.yaml",
	})
	require.NoError(t, err)
	t.Cleanup(closeFn)

	var out bytes.Buffer
	Run(context.Background(), svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	return out.String()
}

func TestRun_BrowseAndSearch(t *testing.T) {
	out := runScript(t,
		"/use gastos",
		"/month 2025-02",
		"papel",
		"/exit",
	)

	assert.Contains(t, out, "Entities: compras, gastos, ingresos, comprobantes, ventas")
	assert.Contains(t, out, "Month    : 2025-02 (previous 2025-01)")
	assert.Contains(t, out, "G-002")
	assert.Contains(t, out, "Records  : 1  page 1/1")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestRun_Paging(t *testing.T) {
	out := runScript(t,
		"/use gastos",
		"/month 2025-02",
		"/limit 1",
		"/next",
		"/next",
		"/prev",
		"/prev",
	)

	assert.Contains(t, out, "page 2/2")
	assert.Contains(t, out, "Already on the last page.")
	assert.Contains(t, out, "Already on the first page.")
}

func TestRun_Errors(t *testing.T) {
	out := runScript(t,
		"hello",
		"/get 1",
		"/use planillas",
		"/use ventas",
		"/get abc",
		"/get 99",
		"/bogus",
	)

	assert.Contains(t, out, "Error: no entity selected")
	assert.Contains(t, out, "unknown entity")
	assert.Contains(t, out, "Error: id must be a positive integer")
	assert.Contains(t, out, "record not found")
	assert.Contains(t, out, "Unknown command: /bogus")
}

func TestRun_RecordAndCategories(t *testing.T) {
	out := runScript(t, "/use gastos", "/get 1", "/cat", "/help")

	assert.Contains(t, out, "Description : Alquiler local")
	assert.Contains(t, out, "CATEGORIES: GASTOS")
	assert.Contains(t, out, "Varios")
	assert.Contains(t, out, "/search [text]")
}
