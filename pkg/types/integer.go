package types

import "strconv"

// IntField represents a 64-bit signed integer field
type IntField struct {
	Value int64
}

func NewIntField(value int64) *IntField {
	return &IntField{Value: value}
}

func (f *IntField) Type() Type {
	return IntType
}

func (f *IntField) String() string {
	return strconv.FormatInt(f.Value, 10)
}

func (f *IntField) Equals(other Field) bool {
	otherField, ok := other.(*IntField)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

// KeyString encodes through the shared numeric encoding so an integer and a
// float holding the same value land in the same hash bucket.
func (f *IntField) KeyString() string {
	return numericKey(float64(f.Value))
}
