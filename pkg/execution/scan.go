package execution

import (
	"fmt"

	"relcore/pkg/iterator"
	"relcore/pkg/tables"
	"relcore/pkg/tuple"
)

// TableScan is the leaf of every pipeline: it reads a stored table's rows
// in insertion order. The table is read-only for the duration of the query,
// so the scan iterates the table's row slice directly without copying.
type TableScan struct {
	table *tables.Table
	base  *iterator.BaseIterator
	rows  *iterator.SliceIterator[*tuple.Tuple]
}

// NewTableScan creates a sequential scan over the given table.
func NewTableScan(table *tables.Table) (*TableScan, error) {
	if table == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	s := &TableScan{
		table: table,
	}
	s.base = iterator.NewBaseIterator(s.readNext)
	return s, nil
}

// Open prepares the scan at the first row of the table.
func (s *TableScan) Open() error {
	s.rows = iterator.NewSliceIterator(s.table.Rows())
	s.base.MarkOpened()
	return nil
}

// readNext returns the next stored row, or nil when the table is exhausted.
func (s *TableScan) readNext() (*tuple.Tuple, error) {
	if !s.rows.HasNext() {
		return nil, nil
	}
	return s.rows.Next()
}

// Rewind resets the scan to the first row.
func (s *TableScan) Rewind() error {
	if s.rows == nil {
		return fmt.Errorf("scan not opened")
	}
	if err := s.rows.Rewind(); err != nil {
		return err
	}
	return s.base.Rewind()
}

// Close releases the scan's iteration state.
func (s *TableScan) Close() error {
	s.rows = nil
	return s.base.Close()
}

// HasNext checks if there are more rows available.
func (s *TableScan) HasNext() (bool, error) {
	return s.base.HasNext()
}

// Next returns the next row from the table.
func (s *TableScan) Next() (*tuple.Tuple, error) {
	return s.base.Next()
}

// GetTupleDesc returns the scanned table's schema.
func (s *TableScan) GetTupleDesc() *tuple.TupleDescription {
	return s.table.TupleDesc()
}
