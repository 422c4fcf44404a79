package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogStore struct {
	pool *pgxpool.Pool
}

// NewCatalog constructs a CatalogLookup backed by PostgreSQL.
func NewCatalog(pool *pgxpool.Pool) CatalogLookup {
	return &catalogStore{pool: pool}
}

func (s *catalogStore) CategoriesByID(ctx context.Context, e Entity, ids []int64) ([]Category, error) {
	q := fmt.Sprintf("SELECT id, descripcion, id_tipo FROM %s WHERE id = ANY($1) ORDER BY id", e.CategoryTable)
	return s.queryCategories(ctx, e, q, ids)
}

func (s *catalogStore) ListCategories(ctx context.Context, e Entity) ([]Category, error) {
	q := fmt.Sprintf(`
		SELECT id, descripcion, id_tipo
		FROM %s
		WHERE id_estado = $1 AND deleted_at IS NULL
		ORDER BY id`, e.CategoryTable)
	return s.queryCategories(ctx, e, q, StateActive)
}

func (s *catalogStore) queryCategories(ctx context.Context, e Entity, q string, args ...any) ([]Category, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", e.CategoryTable, err)
	}
	defer rows.Close()

	cats := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Descripcion, &c.TypeID); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", e.CategoryTable, err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", e.CategoryTable, err)
	}
	return cats, nil
}

func (s *catalogStore) TypesByID(ctx context.Context, e Entity, ids []int64) ([]Type, error) {
	q := fmt.Sprintf("SELECT id, descripcion FROM %s WHERE id = ANY($1) ORDER BY id", e.TypeTable)
	rows, err := s.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", e.TypeTable, err)
	}
	defer rows.Close()

	types := []Type{}
	for rows.Next() {
		var t Type
		if err := rows.Scan(&t.ID, &t.Descripcion); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", e.TypeTable, err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", e.TypeTable, err)
	}
	return types, nil
}
