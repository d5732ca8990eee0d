package types

// Type identifies the semantic type of a column or field value.
// Null is not a type of its own: any column may hold a null, represented
// as a nil Field.
type Type int

const (
	IntType Type = iota
	FloatType
	StringType
)

// String returns a string representation of the type
func (t Type) String() string {
	switch t {
	case IntType:
		return "INT_TYPE"
	case FloatType:
		return "FLOAT_TYPE"
	case StringType:
		return "STRING_TYPE"
	default:
		return "UNKNOWN_TYPE"
	}
}

// Numeric reports whether the type participates in arithmetic and
// cross-type numeric comparison.
func (t Type) Numeric() bool {
	return t == IntType || t == FloatType
}
