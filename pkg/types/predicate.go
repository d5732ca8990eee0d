package types

// Predicate identifies a comparison operation between two field values.
type Predicate int

const (
	Equals Predicate = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Like
)

func (p Predicate) String() string {
	switch p {
	case Equals:
		return "="

	case NotEqual:
		return "<>"

	case LessThan:
		return "<"

	case LessThanOrEqual:
		return "<="

	case GreaterThan:
		return ">"

	case GreaterThanOrEqual:
		return ">="

	case Like:
		return "LIKE"

	default:
		return "UNKNOWN"
	}
}
