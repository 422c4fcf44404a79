package cli

import (
	"fmt"
	"io"
	"strings"

	"backoffice/internal/core"
	"backoffice/internal/db"

	"github.com/shopspring/decimal"
)

const width = 62

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, width))
}

// PrintSummary renders a listing the way the API returns it, as text tables.
func PrintSummary(w io.Writer, s *core.Summary) {
	st := s.Statistics

	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  %-58s\n", strings.ToUpper(s.Entity))
	fmt.Fprintf(w, "  Month    : %s (previous %s)\n", s.Meta.Month, s.Meta.PrevMonth)
	fmt.Fprintf(w, "  Records  : %d  page %d/%d  limit %d\n",
		s.Pagination.Total, s.Pagination.Page, s.Pagination.Pages, s.Pagination.Limit)
	rule(w, "=")
	fmt.Fprintf(w, "  %-8s %-14s %-10s %-10s %14s\n", "ID", "CODE", "DATE", "CATEGORY", "TOTAL")
	rule(w, "-")
	for _, r := range s.Data {
		cat := "-"
		if r.Category != nil {
			cat = truncate(r.Category.Descripcion, 10)
		}
		fmt.Fprintf(w, "  %-8d %-14s %-10s %-10s %14s\n",
			r.ID, truncate(r.Code, 14), r.Fecha.Format("2006-01-02"), cat, r.Total.StringFixed(2))
	}
	if len(s.Data) == 0 {
		fmt.Fprintf(w, "  %-58s\n", "(no records)")
	}

	rule(w, "=")
	fmt.Fprintf(w, "  %-30s %27s\n", "Total month", st.TotalMonth.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %27s\n", "Total previous month", st.TotalMonthPrev.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %27s\n", "Monthly change", change(st.DiferenciaMensual, st.PorcentajeCambioMensual))
	fmt.Fprintf(w, "  %-30s %27s\n", "Total year", st.TotalYear.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %27s\n", "Total previous year", st.TotalYearPrev.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %27s\n", "Yearly change", change(st.DiferenciaAnual, st.PorcentajeCambioAnual))

	printBreakdown(w, "BY CATEGORY", st.Categorias)
	printBreakdown(w, "BY TYPE", st.Tipos)

	rule(w, "=")
	fmt.Fprintf(w, "  %-8s %-12s %37s\n", "MONTH", "NAME", "TOTAL")
	rule(w, "-")
	for _, m := range st.TotalsMonths {
		fmt.Fprintf(w, "  %-8s %-12s %37s\n", m.Month, m.MonthName, m.Total.StringFixed(2))
	}
	rule(w, "=")
}

func printBreakdown(w io.Writer, title string, items []core.BreakdownItem) {
	rule(w, "=")
	fmt.Fprintf(w, "  %-34s %14s %8s\n", title, "TOTAL", "%")
	rule(w, "-")
	for _, it := range items {
		label := "(none)"
		if it.Descripcion != nil {
			label = *it.Descripcion
		}
		fmt.Fprintf(w, "  %-34s %14s %8s\n", truncate(label, 34), it.Total.StringFixed(2), it.Porcentaje.StringFixed(2))
	}
}

func change(diff, pct decimal.Decimal) string {
	sign := ""
	if diff.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s (%s%s%%)", sign, diff.StringFixed(2), sign, pct.StringFixed(2))
}

// PrintRecord renders a single record.
func PrintRecord(w io.Writer, entity string, r *core.Record) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  %s #%d\n", strings.ToUpper(entity), r.ID)
	rule(w, "=")
	fmt.Fprintf(w, "  Code        : %s\n", r.Code)
	fmt.Fprintf(w, "  Date        : %s\n", r.Fecha.Format("2006-01-02"))
	if r.Descripcion != nil {
		fmt.Fprintf(w, "  Description : %s\n", *r.Descripcion)
	}
	if r.Category != nil {
		fmt.Fprintf(w, "  Category    : %s\n", r.Category.Descripcion)
	}
	fmt.Fprintf(w, "  Total       : %s\n", r.Total.StringFixed(2))
	rule(w, "=")
}

// PrintCategories renders the category catalog of an entity.
func PrintCategories(w io.Writer, entity string, cats []core.Category) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  %-58s\n", "CATEGORIES: "+strings.ToUpper(entity))
	rule(w, "=")
	fmt.Fprintf(w, "  %-8s %-40s %8s\n", "ID", "DESCRIPTION", "TYPE")
	rule(w, "-")
	for _, c := range cats {
		typ := "-"
		if c.TypeID != nil {
			typ = fmt.Sprint(*c.TypeID)
		}
		fmt.Fprintf(w, "  %-8d %-40s %8s\n", c.ID, truncate(c.Descripcion, 40), typ)
	}
	rule(w, "=")
}

// PrintSeedResults renders the row counts written by a seed run.
func PrintSeedResults(w io.Writer, results []db.SeedResult) {
	fmt.Fprintf(w, "  %-16s %8s %12s %10s\n", "ENTITY", "TYPES", "CATEGORIES", "RECORDS")
	rule(w, "-")
	for _, r := range results {
		fmt.Fprintf(w, "  %-16s %8d %12d %10d\n", r.Entity, r.Types, r.Categories, r.Records)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
