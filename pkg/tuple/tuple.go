package tuple

import (
	"fmt"
	"strings"

	"relcore/pkg/types"
)

// Tuple represents one row of data. A nil field is a SQL null. Tuples are
// treated as immutable once an operator has emitted them: operators that
// change a row's shape build a new tuple rather than mutating in place.
type Tuple struct {
	TupleDesc *TupleDescription // Schema of this tuple
	fields    []types.Field     // The actual field values; nil entries are nulls
}

// NewTuple creates a new tuple with the given schema. All fields start
// as null.
func NewTuple(td *TupleDescription) *Tuple {
	return &Tuple{
		TupleDesc: td,
		fields:    make([]types.Field, td.NumFields()),
	}
}

// SetField assigns the ith field. A nil field stores a null. A non-null
// value must match the column type, except that an integer column accepts
// nothing but integers and a float column accepts nothing but floats.
func (t *Tuple) SetField(i int, field types.Field) error {
	if i < 0 || i >= len(t.fields) {
		return fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}

	if field != nil {
		expectedType, _ := t.TupleDesc.TypeAtIndex(i)
		if field.Type() != expectedType {
			return fmt.Errorf("field type mismatch at index %d: expected %v, got %v",
				i, expectedType, field.Type())
		}
	}

	t.fields[i] = field
	return nil
}

// GetField returns the value of the ith field. A nil result with a nil
// error is a null value.
func (t *Tuple) GetField(i int) (types.Field, error) {
	if i < 0 || i >= len(t.fields) {
		return nil, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}
	return t.fields[i], nil
}

// String returns a string representation of this tuple.
// Format: field1\tfield2\t...\tfieldN
func (t *Tuple) String() string {
	parts := make([]string, 0, len(t.fields))
	for _, field := range t.fields {
		if field != nil {
			parts = append(parts, field.String())
		} else {
			parts = append(parts, "null")
		}
	}
	return strings.Join(parts, "\t")
}

// CombineTuples concatenates a left and right tuple into one row with the
// given combined schema. Used by joins, with the schema produced by Combine.
func CombineTuples(left, right *Tuple, combined *TupleDescription) (*Tuple, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("cannot combine nil tuples")
	}

	if combined.NumFields() != left.TupleDesc.NumFields()+right.TupleDesc.NumFields() {
		return nil, fmt.Errorf("combined schema has %d fields, inputs have %d + %d",
			combined.NumFields(), left.TupleDesc.NumFields(), right.TupleDesc.NumFields())
	}

	out := NewTuple(combined)
	copy(out.fields, left.fields)
	copy(out.fields[left.TupleDesc.NumFields():], right.fields)
	return out, nil
}

// Clone creates a copy of this tuple sharing the same schema and field
// values. Field values are immutable, so a shallow copy is a deep copy.
func (t *Tuple) Clone() *Tuple {
	cloned := NewTuple(t.TupleDesc)
	copy(cloned.fields, t.fields)
	return cloned
}
