package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type recordStore struct {
	pool *pgxpool.Pool
}

// NewRecordStore constructs a RecordStore backed by PostgreSQL.
func NewRecordStore(pool *pgxpool.Pool) RecordStore {
	return &recordStore{pool: pool}
}

// scope renders the WHERE clause shared by every query: filter plus fecha range.
func scope(e Entity, f Filter, r DateRange) (string, []any) {
	cond, args := f.where(e, nil)
	args = append(args, r.Start)
	cond += fmt.Sprintf(" AND r.fecha >= $%d", len(args))
	args = append(args, r.End)
	cond += fmt.Sprintf(" AND r.fecha < $%d", len(args))
	return cond, args
}

// selectRecord is the column list scanned by scanRecord.
func selectRecord(e Entity) string {
	desc := "NULL::text"
	if e.HasDescription() {
		desc = "r." + e.DescriptionColumn
	}
	return fmt.Sprintf(`
		SELECT r.id, r.%s, r.fecha, %s, r.total, r.id_categoria, r.id_estado,
		       r.id_usuario, r.created_at, r.updated_at, r.deleted_at,
		       c.descripcion, c.id_tipo
		FROM %s r
		LEFT JOIN %s c ON c.id = r.id_categoria`,
		e.CodeColumn, desc, e.Table, e.CategoryTable)
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec       Record
		catDesc   *string
		catTypeID *int64
	)
	err := row.Scan(
		&rec.ID, &rec.Code, &rec.Fecha, &rec.Descripcion, &rec.Total, &rec.CategoryID, &rec.StateID,
		&rec.UserID, &rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
		&catDesc, &catTypeID,
	)
	if err != nil {
		return Record{}, err
	}
	if rec.CategoryID != nil && catDesc != nil {
		rec.Category = &Category{ID: *rec.CategoryID, Descripcion: *catDesc, TypeID: catTypeID}
	}
	return rec, nil
}

// ── FindPage ──────────────────────────────────────────────────────────────────

func (s *recordStore) FindPage(ctx context.Context, e Entity, f Filter, r DateRange, p Pagination) ([]Record, error) {
	cond, args := scope(e, f, r)
	q := selectRecord(e) + " WHERE " + cond
	args = append(args, p.Limit)
	q += fmt.Sprintf(" ORDER BY r.created_at DESC, r.id DESC LIMIT $%d", len(args))
	args = append(args, p.Offset())
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", e.Table, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", e.Table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", e.Table, err)
	}
	return records, nil
}

// ── Aggregates ────────────────────────────────────────────────────────────────

func (s *recordStore) Count(ctx context.Context, e Entity, f Filter, r DateRange) (int64, error) {
	cond, args := scope(e, f, r)
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s r WHERE %s", e.Table, cond)

	var n int64
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", e.Table, err)
	}
	return n, nil
}

func (s *recordStore) SumTotal(ctx context.Context, e Entity, f Filter, r DateRange) (decimal.Decimal, error) {
	cond, args := scope(e, f, r)
	q := fmt.Sprintf("SELECT COALESCE(SUM(r.total), 0) FROM %s r WHERE %s", e.Table, cond)

	var total decimal.Decimal
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", e.Table, err)
	}
	return total, nil
}

func (s *recordStore) SumByCategory(ctx context.Context, e Entity, f Filter, r DateRange) ([]CategorySum, error) {
	cond, args := scope(e, f, r)
	q := fmt.Sprintf(`
		SELECT r.id_categoria, COALESCE(SUM(r.total), 0)
		FROM %s r
		WHERE %s
		GROUP BY r.id_categoria
		ORDER BY r.id_categoria NULLS LAST`, e.Table, cond)

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by category: %w", e.Table, err)
	}
	defer rows.Close()

	var sums []CategorySum
	for rows.Next() {
		var cs CategorySum
		if err := rows.Scan(&cs.CategoryID, &cs.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		sums = append(sums, cs)
	}
	return sums, rows.Err()
}

func (s *recordStore) SumByMonth(ctx context.Context, e Entity, f Filter, r DateRange) ([]MonthSum, error) {
	cond, args := scope(e, f, r)
	q := fmt.Sprintf(`
		SELECT EXTRACT(MONTH FROM r.fecha AT TIME ZONE 'UTC')::int AS month,
		       COALESCE(SUM(r.total), 0)
		FROM %s r
		WHERE %s
		GROUP BY month
		ORDER BY month`, e.Table, cond)

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by month: %w", e.Table, err)
	}
	defer rows.Close()

	var sums []MonthSum
	for rows.Next() {
		var (
			month int
			total decimal.Decimal
		)
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan month sum: %w", err)
		}
		sums = append(sums, MonthSum{Month: time.Month(month), Total: total})
	}
	return sums, rows.Err()
}

// ── FindByID ──────────────────────────────────────────────────────────────────

func (s *recordStore) FindByID(ctx context.Context, e Entity, id int64) (*Record, error) {
	q := selectRecord(e) + " WHERE r.id = $1 AND r.id_estado = $2 AND r.deleted_at IS NULL"

	rec, err := scanRecord(s.pool.QueryRow(ctx, q, id, StateActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %d: %w", e.Name, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load %s %d: %w", e.Table, id, err)
	}
	return &rec, nil
}
