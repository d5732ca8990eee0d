package tuple

import (
	"fmt"
	"strings"

	"relcore/pkg/qerr"
	"relcore/pkg/types"
)

// TupleDescription describes the schema of a tuple: the ordered list of
// column types and names. Every tuple flowing through the engine carries
// one, and operators derive their output schema from their children's.
type TupleDescription struct {
	// Types contains the data type of each column in order
	Types []types.Type
	// FieldNames contains the name of each column in order
	FieldNames []string
}

// NewTupleDesc creates a new TupleDescription from column types and names.
// Both slices are copied; they must be the same non-zero length.
func NewTupleDesc(fieldTypes []types.Type, fieldNames []string) (*TupleDescription, error) {
	if len(fieldTypes) < 1 {
		return nil, fmt.Errorf("must provide at least one field type")
	}

	if len(fieldNames) != len(fieldTypes) {
		return nil, fmt.Errorf("field names length (%d) must match field types length (%d)",
			len(fieldNames), len(fieldTypes))
	}

	typesCopy := make([]types.Type, len(fieldTypes))
	copy(typesCopy, fieldTypes)

	namesCopy := make([]string, len(fieldNames))
	copy(namesCopy, fieldNames)

	return &TupleDescription{
		Types:      typesCopy,
		FieldNames: namesCopy,
	}, nil
}

// NumFields returns the number of columns in this schema.
func (td *TupleDescription) NumFields() int {
	return len(td.Types)
}

// GetFieldName returns the name of the ith column.
func (td *TupleDescription) GetFieldName(i int) (string, error) {
	if i < 0 || i >= len(td.Types) {
		return "", fmt.Errorf("field index %d out of bounds [0, %d)", i, len(td.Types))
	}
	return td.FieldNames[i], nil
}

// TypeAtIndex returns the type of the ith column.
func (td *TupleDescription) TypeAtIndex(i int) (types.Type, error) {
	if i < 0 || i >= len(td.Types) {
		return 0, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(td.Types))
	}
	return td.Types[i], nil
}

// FindFieldIndex locates a column by name. The search is case-sensitive.
// A name of the form "table.column" matches only a qualified column; a bare
// name also matches a qualified column whose suffix after the dot equals it,
// provided the match is unambiguous.
func (td *TupleDescription) FindFieldIndex(fieldName string) (int, error) {
	for i, name := range td.FieldNames {
		if name == fieldName {
			return i, nil
		}
	}

	// Fall back to suffix matching so "price" finds "order.price".
	found := -1
	for i, name := range td.FieldNames {
		if dot := strings.IndexByte(name, '.'); dot >= 0 && name[dot+1:] == fieldName {
			if found >= 0 {
				return -1, qerr.Newf(qerr.NotFound, "column %s is ambiguous", fieldName)
			}
			found = i
		}
	}
	if found >= 0 {
		return found, nil
	}

	return -1, qerr.Newf(qerr.NotFound, "column %s not found", fieldName)
}

// Equals checks if two TupleDescriptions have the same column types in the
// same order. Column names are not compared.
func (td *TupleDescription) Equals(other *TupleDescription) bool {
	if other == nil {
		return false
	}

	if len(td.Types) != len(other.Types) {
		return false
	}

	for i, fieldType := range td.Types {
		if fieldType != other.Types[i] {
			return false
		}
	}
	return true
}

// String returns a string representation of this TupleDescription.
// Format: "Type1(name1),Type2(name2),..."
func (td *TupleDescription) String() string {
	var parts []string
	for i, fieldType := range td.Types {
		parts = append(parts, fmt.Sprintf("%s(%s)", fieldType.String(), td.FieldNames[i]))
	}
	return strings.Join(parts, ",")
}

// Combine merges a left and right schema into a join output schema: all
// left columns followed by all right columns. A right column whose name
// collides with any left column is qualified as "rightQualifier.name".
func Combine(left, right *TupleDescription, rightQualifier string) *TupleDescription {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}

	leftNames := make(map[string]bool, len(left.FieldNames))
	for _, name := range left.FieldNames {
		leftNames[name] = true
	}

	newTypes := make([]types.Type, 0, len(left.Types)+len(right.Types))
	newTypes = append(newTypes, left.Types...)
	newTypes = append(newTypes, right.Types...)

	newNames := make([]string, 0, len(newTypes))
	newNames = append(newNames, left.FieldNames...)
	for _, name := range right.FieldNames {
		if leftNames[name] && rightQualifier != "" {
			newNames = append(newNames, rightQualifier+"."+name)
		} else {
			newNames = append(newNames, name)
		}
	}

	combined, _ := NewTupleDesc(newTypes, newNames)
	return combined
}
