package tables

import (
	"fmt"

	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// Column is one column definition in a table schema.
type Column struct {
	Name string
	Type types.Type
}

// Table is a named in-memory relation: an ordered column schema plus an
// ordered sequence of rows. Rows are appended while the table is being
// loaded; during query execution a table is read-only, which is what makes
// concurrent read-only queries against the same store safe.
type Table struct {
	Name string

	tupleDesc *tuple.TupleDescription
	rows      []*tuple.Tuple
}

// NewTable creates an empty table with the given name and columns.
func NewTable(name string, columns []Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s must have at least one column", name)
	}

	colTypes := make([]types.Type, len(columns))
	colNames := make([]string, len(columns))
	for i, col := range columns {
		colTypes[i] = col.Type
		colNames[i] = col.Name
	}

	td, err := tuple.NewTupleDesc(colTypes, colNames)
	if err != nil {
		return nil, fmt.Errorf("invalid schema for table %s: %w", name, err)
	}

	return &Table{
		Name:      name,
		tupleDesc: td,
	}, nil
}

// AppendRow adds one row to the table. The number of values must match the
// column count; each value must match its column type or be nil for null.
func (t *Table) AppendRow(values ...types.Field) error {
	if len(values) != t.tupleDesc.NumFields() {
		return fmt.Errorf("table %s has %d columns, got %d values",
			t.Name, t.tupleDesc.NumFields(), len(values))
	}

	row := tuple.NewTuple(t.tupleDesc)
	for i, v := range values {
		if err := row.SetField(i, v); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}

	t.rows = append(t.rows, row)
	return nil
}

// TupleDesc returns the table's schema.
func (t *Table) TupleDesc() *tuple.TupleDescription {
	return t.tupleDesc
}

// NumRows returns the number of rows currently in the table.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Rows returns the table's rows in insertion order. The returned slice
// must not be mutated; scans copy the slice header, not the rows.
func (t *Table) Rows() []*tuple.Tuple {
	return t.rows
}
