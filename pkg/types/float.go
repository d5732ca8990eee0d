package types

import "strconv"

// FloatField represents a 64-bit floating point field. Aggregate averages
// produce floats even over integer columns.
type FloatField struct {
	Value float64
}

func NewFloatField(value float64) *FloatField {
	return &FloatField{Value: value}
}

func (f *FloatField) Type() Type {
	return FloatType
}

func (f *FloatField) String() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

func (f *FloatField) Equals(other Field) bool {
	otherField, ok := other.(*FloatField)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

// KeyString encodes through the shared numeric encoding so an integer and a
// float holding the same value land in the same hash bucket.
func (f *FloatField) KeyString() string {
	return numericKey(f.Value)
}

// numericKey is the canonical hash-key encoding for numeric values.
// Negative zero is folded into zero: the two compare equal, so they must
// land in the same join/group bucket.
func numericKey(v float64) string {
	if v == 0 {
		v = 0
	}
	return "n:" + strconv.FormatFloat(v, 'g', -1, 64)
}
