package core

import "fmt"

// Entity describes how one transactional table is laid out. Every listing
// and aggregation query is parameterized by it.
type Entity struct {
	Name              string // key used in routes and fixtures
	Table             string
	CodeColumn        string
	DescriptionColumn string // empty when the table has no free-text description
	CategoryTable     string
	TypeTable         string
}

// HasDescription reports whether searches should also match the description column.
func (e Entity) HasDescription() bool {
	return e.DescriptionColumn != ""
}

var entities = []Entity{
	newEntity("compras", "codigo_compra", ""),
	newEntity("gastos", "codigo_gasto", "descripcion"),
	newEntity("ingresos", "codigo_ingreso", "descripcion"),
	newEntity("comprobantes", "codigo_comprobante", "descripcion"),
	newEntity("ventas", "codigo_venta", ""),
}

func newEntity(name, codeColumn, descriptionColumn string) Entity {
	return Entity{
		Name:              name,
		Table:             name,
		CodeColumn:        codeColumn,
		DescriptionColumn: descriptionColumn,
		CategoryTable:     "categorias_" + name,
		TypeTable:         "tipos_" + name,
	}
}

// LookupEntity returns the registered entity with the given key.
func LookupEntity(name string) (Entity, error) {
	for _, e := range entities {
		if e.Name == name {
			return e, nil
		}
	}
	return Entity{}, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
}

// Entities returns all registered entities in a stable order.
func Entities() []Entity {
	out := make([]Entity, len(entities))
	copy(out, entities)
	return out
}
