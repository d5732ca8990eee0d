package types

import (
	"math"

	"relcore/pkg/qerr"
)

// Field is a single scalar value held by a row. A null value is not a
// Field implementation: it is represented as a nil Field, and the
// package-level Compare handles nil operands before any method dispatch.
type Field interface {
	// Type returns the semantic type of this value.
	Type() Type

	// String returns a display representation of the value.
	String() string

	// Equals reports strict equality with another field: same type, same value.
	Equals(other Field) bool

	// KeyString returns a canonical encoding of the value for use in hash
	// join and grouping keys. Two fields that compare equal under Equals
	// produce the same KeyString, and numeric fields of different widths
	// holding the same value encode identically.
	KeyString() string
}

// Compare evaluates `left op right` under SQL comparison semantics.
// If either operand is null (nil), the result is Unknown. Comparing
// incompatible types (text against a number) fails with TypeError.
// Integers and floats compare numerically against each other.
func Compare(op Predicate, left, right Field) (TriState, error) {
	if left == nil || right == nil {
		return Unknown, nil
	}

	if op == Like {
		return compareLike(left, right)
	}

	cmp, err := Order(left, right)
	if err != nil {
		return Unknown, err
	}

	switch op {
	case Equals:
		return TriFromBool(cmp == 0), nil
	case NotEqual:
		return TriFromBool(cmp != 0), nil
	case LessThan:
		return TriFromBool(cmp < 0), nil
	case LessThanOrEqual:
		return TriFromBool(cmp <= 0), nil
	case GreaterThan:
		return TriFromBool(cmp > 0), nil
	case GreaterThanOrEqual:
		return TriFromBool(cmp >= 0), nil
	default:
		return Unknown, qerr.Newf(qerr.TypeError, "unsupported comparison operator %v", op)
	}
}

// Order returns a three-way comparison of two non-null fields:
// negative if left sorts before right, zero if equal, positive otherwise.
// Fails with TypeError when the operand types are not comparable.
func Order(left, right Field) (int, error) {
	if left.Type().Numeric() && right.Type().Numeric() {
		lv, rv := numericValue(left), numericValue(right)
		// NaN needs an explicit rank to keep the order total: it sorts
		// after every number and equal to itself. Without this, both < and
		// > are false against NaN and it would compare equal to anything.
		ln, rn := math.IsNaN(lv), math.IsNaN(rv)
		switch {
		case ln && rn:
			return 0, nil
		case ln:
			return 1, nil
		case rn:
			return -1, nil
		}
		switch {
		case lv < rv:
			return -1, nil
		case lv > rv:
			return 1, nil
		default:
			return 0, nil
		}
	}

	ls, lok := left.(*StringField)
	rs, rok := right.(*StringField)
	if lok && rok {
		switch {
		case ls.Value < rs.Value:
			return -1, nil
		case ls.Value > rs.Value:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, qerr.Newf(qerr.TypeError, "cannot compare %v to %v", left.Type(), right.Type())
}

// compareLike evaluates `left LIKE right` where right holds the pattern.
// Both operands must be text.
func compareLike(left, right Field) (TriState, error) {
	ls, lok := left.(*StringField)
	rs, rok := right.(*StringField)
	if !lok || !rok {
		return Unknown, qerr.Newf(qerr.TypeError, "LIKE requires text operands, got %v and %v",
			left.Type(), right.Type())
	}
	return TriFromBool(MatchLike(ls.Value, rs.Value)), nil
}

// numericValue widens a numeric field to float64 for cross-type comparison.
func numericValue(f Field) float64 {
	switch v := f.(type) {
	case *IntField:
		return float64(v.Value)
	case *FloatField:
		return v.Value
	default:
		return 0
	}
}
