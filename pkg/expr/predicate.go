package expr

import (
	"fmt"

	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// Predicate evaluates to a tri-state boolean against one row. Filters keep
// a row only when the predicate evaluates to True; False and Unknown both
// reject, which is how SQL null semantics fall out of filtering.
type Predicate interface {
	Evaluate(t *tuple.Tuple) (types.TriState, error)
	String() string
}

// Compare evaluates `Left op Right` using SQL comparison semantics: a null
// operand makes the result Unknown, and mismatched operand types fail with
// TypeError.
type Compare struct {
	Op    types.Predicate
	Left  Expression
	Right Expression
}

// NewCompare creates a comparison predicate.
func NewCompare(op types.Predicate, left, right Expression) *Compare {
	return &Compare{Op: op, Left: left, Right: right}
}

// Eq is shorthand for an equality comparison between a column and a literal.
func Eq(column string, value types.Field) *Compare {
	return NewCompare(types.Equals, NewColumn(column), NewLiteral(value))
}

func (c *Compare) Evaluate(t *tuple.Tuple) (types.TriState, error) {
	left, err := c.Left.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	right, err := c.Right.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	return types.Compare(c.Op, left, right)
}

func (c *Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// Between evaluates `Value BETWEEN Low AND High`, inclusive on both ends.
// Defined as value >= low AND value <= high with Kleene conjunction, so a
// null anywhere yields Unknown.
type Between struct {
	Value Expression
	Low   Expression
	High  Expression
}

// NewBetween creates a BETWEEN predicate.
func NewBetween(value, low, high Expression) *Between {
	return &Between{Value: value, Low: low, High: high}
}

func (b *Between) Evaluate(t *tuple.Tuple) (types.TriState, error) {
	lower, err := NewCompare(types.GreaterThanOrEqual, b.Value, b.Low).Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	upper, err := NewCompare(types.LessThanOrEqual, b.Value, b.High).Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	return lower.And(upper), nil
}

func (b *Between) String() string {
	return fmt.Sprintf("(%s BETWEEN %s AND %s)", b.Value, b.Low, b.High)
}

// Like evaluates `Value LIKE Pattern` where '%' matches any sequence and
// '_' matches exactly one character, case-sensitively. A null value yields
// Unknown; a non-text value fails with TypeError.
type Like struct {
	Value   Expression
	Pattern string
}

// NewLike creates a LIKE predicate with a fixed pattern.
func NewLike(value Expression, pattern string) *Like {
	return &Like{Value: value, Pattern: pattern}
}

func (l *Like) Evaluate(t *tuple.Tuple) (types.TriState, error) {
	v, err := l.Value.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	if v == nil {
		return types.Unknown, nil
	}

	s, ok := v.(*types.StringField)
	if !ok {
		return types.Unknown, qerr.Newf(qerr.TypeError, "LIKE requires a text operand, got %v", v.Type())
	}

	return types.TriFromBool(types.MatchLike(s.Value, l.Pattern)), nil
}

func (l *Like) String() string {
	return fmt.Sprintf("(%s LIKE %q)", l.Value, l.Pattern)
}

// And is the Kleene conjunction of two predicates.
type And struct {
	Left  Predicate
	Right Predicate
}

// NewAnd creates a conjunction predicate.
func NewAnd(left, right Predicate) *And {
	return &And{Left: left, Right: right}
}

func (a *And) Evaluate(t *tuple.Tuple) (types.TriState, error) {
	left, err := a.Left.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}

	// short-circuit: False AND anything is False
	if left == types.False {
		return types.False, nil
	}

	right, err := a.Right.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	return left.And(right), nil
}

func (a *And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

// Or is the Kleene disjunction of two predicates.
type Or struct {
	Left  Predicate
	Right Predicate
}

// NewOr creates a disjunction predicate.
func NewOr(left, right Predicate) *Or {
	return &Or{Left: left, Right: right}
}

func (o *Or) Evaluate(t *tuple.Tuple) (types.TriState, error) {
	left, err := o.Left.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}

	// short-circuit: True OR anything is True
	if left == types.True {
		return types.True, nil
	}

	right, err := o.Right.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	return left.Or(right), nil
}

func (o *Or) String() string {
	return fmt.Sprintf("(%s OR %s)", o.Left, o.Right)
}

// Not is the Kleene negation of a predicate. NOT Unknown stays Unknown.
type Not struct {
	Inner Predicate
}

// NewNot creates a negation predicate.
func NewNot(inner Predicate) *Not {
	return &Not{Inner: inner}
}

func (n *Not) Evaluate(t *tuple.Tuple) (types.TriState, error) {
	inner, err := n.Inner.Evaluate(t)
	if err != nil {
		return types.Unknown, err
	}
	return inner.Not(), nil
}

func (n *Not) String() string {
	return fmt.Sprintf("(NOT %s)", n.Inner)
}
