package db

import (
	"context"
	"fmt"

	"backoffice/internal/core"
	"backoffice/internal/fixture"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedResult counts the rows written per entity.
type SeedResult struct {
	Entity     string
	Types      int
	Categories int
	Records    int
}

// Seed upserts every row of a fixture file in a single transaction and
// advances the id sequences past the seeded ids.
func Seed(ctx context.Context, pool *pgxpool.Pool, f *fixture.File) ([]SeedResult, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var results []SeedResult
	for _, name := range f.EntityNames() {
		e, err := core.LookupEntity(name)
		if err != nil {
			return nil, err
		}
		res, err := seedEntity(ctx, tx, e, f.Entities[name])
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", name, err)
		}
		results = append(results, res)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}
	return results, nil
}

func seedEntity(ctx context.Context, tx pgx.Tx, e core.Entity, data fixture.EntityData) (SeedResult, error) {
	res := SeedResult{Entity: e.Name}

	for _, t := range data.CoreTypes() {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, descripcion) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET descripcion = EXCLUDED.descripcion, updated_at = NOW()`, e.TypeTable),
			t.ID, t.Descripcion)
		if err != nil {
			return res, fmt.Errorf("type %d: %w", t.ID, err)
		}
		res.Types++
	}

	statuses, err := data.CategoryStatuses()
	if err != nil {
		return res, err
	}
	for _, c := range data.CoreCategories() {
		st := statuses[c.ID]
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, descripcion, id_tipo, id_estado, deleted_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET descripcion = EXCLUDED.descripcion, id_tipo = EXCLUDED.id_tipo,
				id_estado = EXCLUDED.id_estado, deleted_at = EXCLUDED.deleted_at, updated_at = NOW()`,
			e.CategoryTable),
			c.ID, c.Descripcion, c.TypeID, st.StateID, st.DeletedAt)
		if err != nil {
			return res, fmt.Errorf("category %d: %w", c.ID, err)
		}
		res.Categories++
	}

	records, err := data.CoreRecords()
	if err != nil {
		return res, err
	}

	cols := "id, " + e.CodeColumn + ", fecha, total, id_categoria, id_estado, id_usuario, created_at, updated_at, deleted_at"
	vals := "$1, $2, $3, $4, $5, $6, $7, $8, $9, $10"
	update := e.CodeColumn + " = EXCLUDED." + e.CodeColumn + `, fecha = EXCLUDED.fecha, total = EXCLUDED.total,
		id_categoria = EXCLUDED.id_categoria, id_estado = EXCLUDED.id_estado, id_usuario = EXCLUDED.id_usuario,
		created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at, deleted_at = EXCLUDED.deleted_at`
	if e.HasDescription() {
		cols += ", " + e.DescriptionColumn
		vals += ", $11"
		update += ", " + e.DescriptionColumn + " = EXCLUDED." + e.DescriptionColumn
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s", e.Table, cols, vals, update)

	for _, r := range records {
		args := []any{r.ID, r.Code, r.Fecha, r.Total, r.CategoryID, r.StateID, r.UserID, r.CreatedAt, r.UpdatedAt, r.DeletedAt}
		if e.HasDescription() {
			args = append(args, r.Descripcion)
		}
		if _, err := tx.Exec(ctx, q, args...); err != nil {
			return res, fmt.Errorf("record %d: %w", r.ID, err)
		}
		res.Records++
	}

	for _, table := range []string{e.TypeTable, e.CategoryTable, e.Table} {
		_, err := tx.Exec(ctx, fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)", table))
		if err != nil {
			return res, fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}
	return res, nil
}
