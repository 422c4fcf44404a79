package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Record states stored in id_estado.
const (
	StateActive   int64 = 1
	StateInactive int64 = 2
)

var (
	// ErrNotFound is returned when a live record with the requested id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownEntity is returned when an entity key is not registered.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrDataAccess wraps every failure coming from a record store or catalog.
	ErrDataAccess = errors.New("data access failure")
)

// Record is a transactional row shared by compras, gastos, ingresos,
// comprobantes and ventas. Descripcion is nil for entities without a
// description column.
type Record struct {
	ID          int64
	Code        string
	Fecha       time.Time
	Descripcion *string
	Total       decimal.Decimal
	CategoryID  *int64
	Category    *Category // populated by FindPage and FindByID when CategoryID is set
	StateID     int64
	UserID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsLive reports whether the record is active and not soft-deleted.
func (r Record) IsLive() bool {
	return r.StateID == StateActive && r.DeletedAt == nil
}

// Category is the first classification level of a record.
type Category struct {
	ID          int64
	Descripcion string
	TypeID      *int64
}

// Type groups categories. Records reach a type only through their category.
type Type struct {
	ID          int64
	Descripcion string
}
