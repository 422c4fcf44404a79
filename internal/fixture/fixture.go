// Package fixture reads YAML seed files describing categories, types and
// records per entity. The same file seeds the in-memory backend and a
// PostgreSQL database.
package fixture

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"backoffice/internal/core"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the top-level document.
type File struct {
	Entities map[string]EntityData `yaml:"entities"`
}

// EntityData holds the rows of one entity.
type EntityData struct {
	Types      []TypeRow     `yaml:"types"`
	Categories []CategoryRow `yaml:"categories"`
	Records    []RecordRow   `yaml:"records"`
}

type TypeRow struct {
	ID          int64  `yaml:"id"`
	Descripcion string `yaml:"descripcion"`
}

// CategoryRow is one catalog row. Estado defaults to active.
type CategoryRow struct {
	ID          int64  `yaml:"id"`
	Descripcion string `yaml:"descripcion"`
	TypeID      *int64 `yaml:"id_tipo"`
	Estado      int64  `yaml:"id_estado"`
	DeletedAt   string `yaml:"deleted_at"`
}

// CategoryStatus holds the lifecycle columns of a category row.
type CategoryStatus struct {
	StateID   int64
	DeletedAt *time.Time
}

// IsLive reports whether the category is active and not soft-deleted.
func (c CategoryStatus) IsLive() bool {
	return c.StateID == core.StateActive && c.DeletedAt == nil
}

// RecordRow is one transactional row. Dates accept YYYY-MM-DD or RFC 3339.
// Estado defaults to active; CreatedAt defaults to Fecha.
type RecordRow struct {
	ID          int64   `yaml:"id"`
	Codigo      string  `yaml:"codigo"`
	Fecha       string  `yaml:"fecha"`
	Descripcion *string `yaml:"descripcion"`
	Total       string  `yaml:"total"`
	CategoryID  *int64  `yaml:"id_categoria"`
	Estado      int64   `yaml:"id_estado"`
	UserID      *int64  `yaml:"id_usuario"`
	CreatedAt   string  `yaml:"created_at"`
	DeletedAt   string  `yaml:"deleted_at"`
}

// Load reads and parses a fixture file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture document and checks that every entity key is registered.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	for name := range f.Entities {
		if _, err := core.LookupEntity(name); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// EntityNames returns the entity keys present in the file, sorted.
func (f *File) EntityNames() []string {
	names := make([]string, 0, len(f.Entities))
	for name := range f.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CoreTypes converts the type rows.
func (d EntityData) CoreTypes() []core.Type {
	out := make([]core.Type, len(d.Types))
	for i, t := range d.Types {
		out[i] = core.Type{ID: t.ID, Descripcion: t.Descripcion}
	}
	return out
}

// CoreCategories converts the category rows.
func (d EntityData) CoreCategories() []core.Category {
	out := make([]core.Category, len(d.Categories))
	for i, c := range d.Categories {
		out[i] = core.Category{ID: c.ID, Descripcion: c.Descripcion, TypeID: c.TypeID}
	}
	return out
}

// CategoryStatuses returns the lifecycle of every category row keyed by id.
func (d EntityData) CategoryStatuses() (map[int64]CategoryStatus, error) {
	out := make(map[int64]CategoryStatus, len(d.Categories))
	for _, c := range d.Categories {
		st := CategoryStatus{StateID: c.Estado}
		if st.StateID == 0 {
			st.StateID = core.StateActive
		}
		if c.DeletedAt != "" {
			deleted, err := parseTime(c.DeletedAt)
			if err != nil {
				return nil, fmt.Errorf("category %d deleted_at: %w", c.ID, err)
			}
			st.DeletedAt = &deleted
		}
		out[c.ID] = st
	}
	return out, nil
}

// CoreRecords converts and validates the record rows.
func (d EntityData) CoreRecords() ([]core.Record, error) {
	out := make([]core.Record, 0, len(d.Records))
	for _, row := range d.Records {
		rec, err := row.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", row.ID, row.Codigo, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (row RecordRow) toRecord() (core.Record, error) {
	if row.Codigo == "" {
		return core.Record{}, fmt.Errorf("codigo is required")
	}
	fecha, err := parseTime(row.Fecha)
	if err != nil {
		return core.Record{}, fmt.Errorf("fecha: %w", err)
	}
	total, err := decimal.NewFromString(strings.TrimSpace(row.Total))
	if err != nil {
		return core.Record{}, fmt.Errorf("total: %w", err)
	}

	rec := core.Record{
		ID:          row.ID,
		Code:        row.Codigo,
		Fecha:       fecha,
		Descripcion: row.Descripcion,
		Total:       total,
		CategoryID:  row.CategoryID,
		StateID:     row.Estado,
		UserID:      row.UserID,
		CreatedAt:   fecha,
	}
	if rec.StateID == 0 {
		rec.StateID = core.StateActive
	}
	if row.CreatedAt != "" {
		if rec.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
			return core.Record{}, fmt.Errorf("created_at: %w", err)
		}
	}
	rec.UpdatedAt = rec.CreatedAt
	if row.DeletedAt != "" {
		deleted, err := parseTime(row.DeletedAt)
		if err != nil {
			return core.Record{}, fmt.Errorf("deleted_at: %w", err)
		}
		rec.DeletedAt = &deleted
	}
	return rec, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
	}
	return t.UTC(), nil
}
