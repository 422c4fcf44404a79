package core_test

import (
	"context"
	"os"
	"testing"

	"backoffice/internal/core"
	"backoffice/internal/db"
	"backoffice/internal/fixture"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database; the tables are truncated on every run.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	m, err := db.OpenMigrator(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to open migrator: %v", err)
	}
	defer m.Close()
	if err := m.Up(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	pool, err := db.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE compras, gastos, ingresos, comprobantes, ventas,
			categorias_compras, categorias_gastos, categorias_ingresos, categorias_comprobantes, categorias_ventas,
			tipos_compras, tipos_gastos, tipos_ingresos, tipos_comprobantes, tipos_ventas
		RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	f, err := fixture.Load("../fixture/testdata/seed.yaml")
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}
	if _, err := db.Seed(ctx, pool, f); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func TestReporting_PostgresSummarize(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewReportingService(core.NewRecordStore(pool), core.NewCatalog(pool))
	ctx := context.Background()
	gastos, _ := core.LookupEntity("gastos")

	t.Run("february totals", func(t *testing.T) {
		sum, err := svc.Summarize(ctx, gastos, core.ListQuery{Month: "2025-02", Page: core.NewPagination("", "")})
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		st := sum.Statistics
		if st.TotalRegistros != 2 {
			t.Errorf("TotalRegistros: want 2, got %d", st.TotalRegistros)
		}
		assertDec(t, "300", st.TotalMonth)
		assertDec(t, "50", st.TotalMonthPrev)
		assertDec(t, "500", st.PorcentajeCambioMensual)
		if len(st.Categorias) != 2 {
			t.Fatalf("Categorias: want 2, got %d", len(st.Categorias))
		}
		assertDec(t, "33.33", st.Categorias[0].Porcentaje)
		assertDec(t, "66.67", st.Categorias[1].Porcentaje)
		if *st.Tipos[0].Descripcion != "Fijos" || *st.Tipos[1].Descripcion != "Variables" {
			t.Errorf("unexpected type breakdown: %+v", st.Tipos)
		}
		assertDec(t, "50", st.TotalsMonths[0].Total)
		assertDec(t, "300", st.TotalsMonths[1].Total)
		if sum.Data[0].Code != "G-002" {
			t.Errorf("first row: want G-002, got %s", sum.Data[0].Code)
		}
		if sum.Data[0].Category == nil || sum.Data[0].Category.Descripcion != "Papeleria" {
			t.Errorf("first row category not joined: %+v", sum.Data[0].Category)
		}
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		sum, err := svc.Summarize(ctx, gastos, core.ListQuery{Search: "%", Month: "2025-02", Page: core.NewPagination("", "")})
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if sum.Statistics.TotalRegistros != 0 {
			t.Errorf("literal %% should match nothing, got %d rows", sum.Statistics.TotalRegistros)
		}
	})

	t.Run("search by description and amount", func(t *testing.T) {
		for search, want := range map[string]int64{"resmas": 1, "200": 1, "alquiler": 1, "G-00": 2} {
			sum, err := svc.Summarize(ctx, gastos, core.ListQuery{Search: search, Month: "2025-02", Page: core.NewPagination("", "")})
			if err != nil {
				t.Fatalf("Summarize(%q) failed: %v", search, err)
			}
			if sum.Statistics.TotalRegistros != want {
				t.Errorf("Summarize(%q): want %d rows, got %d", search, want, sum.Statistics.TotalRegistros)
			}
		}
	})
}

func TestReporting_PostgresGetRecord(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewReportingService(core.NewRecordStore(pool), core.NewCatalog(pool))
	ctx := context.Background()
	gastos, _ := core.LookupEntity("gastos")

	rec, err := svc.GetRecord(ctx, gastos, 1)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if rec.Code != "G-001" || rec.Descripcion == nil || *rec.Descripcion != "Alquiler local" {
		t.Errorf("unexpected record: %+v", rec)
	}

	// 4 is inactive, 5 is soft-deleted
	for _, id := range []int64{4, 5, 404} {
		if _, err := svc.GetRecord(ctx, gastos, id); err == nil {
			t.Errorf("GetRecord(%d): expected ErrNotFound", id)
		}
	}

	cats, err := svc.ListCategories(ctx, gastos)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(cats) != 3 {
		t.Errorf("ListCategories: want 3, got %d", len(cats))
	}
}
