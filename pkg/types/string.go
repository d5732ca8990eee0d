package types

// StringField represents a text field.
type StringField struct {
	Value string
}

func NewStringField(value string) *StringField {
	return &StringField{Value: value}
}

func (s *StringField) Type() Type {
	return StringType
}

// String returns the text value stored in this field.
func (s *StringField) String() string {
	return s.Value
}

func (s *StringField) Equals(other Field) bool {
	otherField, ok := other.(*StringField)
	if !ok {
		return false
	}
	return s.Value == otherField.Value
}

// KeyString prefixes the value so text keys can never collide with the
// numeric key encoding.
func (s *StringField) KeyString() string {
	return "s:" + s.Value
}
