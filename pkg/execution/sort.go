package execution

import (
	"fmt"
	"sort"

	"relcore/pkg/iterator"
	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// SortKey names one ordering column and its direction.
type SortKey struct {
	Column string
	Desc   bool
}

// Sort orders its input by one or more keys. The sort is stable: rows that
// compare equal on every key keep their input order. Nulls sort before all
// non-null values ascending, after them descending.
type Sort struct {
	child      iterator.RowIterator
	keys       []SortKey
	keyIndexes []int

	sorted *iterator.SliceIterator[*tuple.Tuple]
	base   *iterator.BaseIterator
}

// NewSort creates a sort operator over the child. Unknown key columns fail
// with PlanError.
func NewSort(child iterator.RowIterator, keys []SortKey) (*Sort, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if len(keys) == 0 {
		return nil, qerr.New(qerr.PlanError, "sort requires at least one key")
	}

	childTd := child.GetTupleDesc()
	keyIndexes := make([]int, len(keys))
	for i, key := range keys {
		idx, err := childTd.FindFieldIndex(key.Column)
		if err != nil {
			return nil, qerr.Newf(qerr.PlanError, "sort references unknown column %s", key.Column)
		}
		keyIndexes[i] = idx
	}

	s := &Sort{
		child:      child,
		keys:       keys,
		keyIndexes: keyIndexes,
	}
	s.base = iterator.NewBaseIterator(s.readNext)
	return s, nil
}

// Open opens the child, drains it and sorts the buffered rows.
func (s *Sort) Open() error {
	if err := s.child.Open(); err != nil {
		return fmt.Errorf("failed to open child operator: %w", err)
	}

	rows, err := iterator.Collect(s.child)
	if err != nil {
		return fmt.Errorf("failed to buffer input for sorting: %w", err)
	}

	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := s.less(rows[i], rows[j])
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	if sortErr != nil {
		return sortErr
	}

	s.sorted = iterator.NewSliceIterator(rows)
	s.base.MarkOpened()
	return nil
}

// less compares two rows key by key. Each key ranks null below every
// non-null value, then the direction flips the outcome for descending keys.
func (s *Sort) less(a, b *tuple.Tuple) (bool, error) {
	for i, idx := range s.keyIndexes {
		fa, err := a.GetField(idx)
		if err != nil {
			return false, err
		}
		fb, err := b.GetField(idx)
		if err != nil {
			return false, err
		}

		cmp, err := orderWithNulls(fa, fb)
		if err != nil {
			return false, err
		}
		if cmp == 0 {
			continue
		}
		if s.keys[i].Desc {
			return cmp > 0, nil
		}
		return cmp < 0, nil
	}
	return false, nil
}

// orderWithNulls extends types.Order with a total order over nulls: null
// ranks below every non-null value and equal to another null.
func orderWithNulls(a, b types.Field) (int, error) {
	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return -1, nil
	case b == nil:
		return 1, nil
	}
	return types.Order(a, b)
}

func (s *Sort) readNext() (*tuple.Tuple, error) {
	if s.sorted.Remaining() == 0 {
		return nil, nil
	}
	return s.sorted.Next()
}

// Rewind resets to the first sorted row without resorting.
func (s *Sort) Rewind() error {
	if s.sorted == nil {
		return fmt.Errorf("sort not opened")
	}
	if err := s.sorted.Rewind(); err != nil {
		return err
	}
	return s.base.Rewind()
}

// Close releases the sorted buffer and closes the child.
func (s *Sort) Close() error {
	s.sorted = nil

	if err := s.child.Close(); err != nil {
		return err
	}
	return s.base.Close()
}

// HasNext checks if there are more sorted rows available.
func (s *Sort) HasNext() (bool, error) {
	return s.base.HasNext()
}

// Next returns the next row in sort order.
func (s *Sort) Next() (*tuple.Tuple, error) {
	return s.base.Next()
}

// GetTupleDesc returns the child's schema; sorting does not change it.
func (s *Sort) GetTupleDesc() *tuple.TupleDescription {
	return s.child.GetTupleDesc()
}
