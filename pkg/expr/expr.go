package expr

import (
	"fmt"

	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// Expression evaluates to a scalar value against one row. A nil result
// field with a nil error is a SQL null.
type Expression interface {
	Evaluate(t *tuple.Tuple) (types.Field, error)
	String() string
}

// Column references a column of the input row by name. Resolution happens
// per evaluation against the row's own schema, so the same expression works
// against scan rows, join rows, and aggregate output rows.
type Column struct {
	Name string
}

// NewColumn creates a column reference expression.
func NewColumn(name string) *Column {
	return &Column{Name: name}
}

func (c *Column) Evaluate(t *tuple.Tuple) (types.Field, error) {
	idx, err := t.TupleDesc.FindFieldIndex(c.Name)
	if err != nil {
		return nil, err
	}
	return t.GetField(idx)
}

func (c *Column) String() string {
	return c.Name
}

// Literal is a constant scalar value. A nil Value is the NULL literal.
type Literal struct {
	Value types.Field
}

// NewLiteral creates a constant expression.
func NewLiteral(value types.Field) *Literal {
	return &Literal{Value: value}
}

// Int is shorthand for an integer literal.
func Int(v int64) *Literal {
	return &Literal{Value: types.NewIntField(v)}
}

// Text is shorthand for a text literal.
func Text(v string) *Literal {
	return &Literal{Value: types.NewStringField(v)}
}

// Null is the NULL literal.
func Null() *Literal {
	return &Literal{Value: nil}
}

func (l *Literal) Evaluate(_ *tuple.Tuple) (types.Field, error) {
	return l.Value, nil
}

func (l *Literal) String() string {
	if l.Value == nil {
		return "NULL"
	}
	return l.Value.String()
}

// ArithOp identifies an arithmetic operation.
type ArithOp int

const (
	Add ArithOp = iota
	Subtract
	Multiply
	Divide
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return "?"
	}
}

// Arithmetic applies +, -, * or / to two numeric sub-expressions. A null
// operand makes the whole expression null. Integer operands produce an
// integer (division truncates); a float operand on either side produces a
// float. Division by zero fails with ArithmeticError.
type Arithmetic struct {
	Op    ArithOp
	Left  Expression
	Right Expression
}

// NewArithmetic creates an arithmetic expression.
func NewArithmetic(op ArithOp, left, right Expression) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right}
}

func (a *Arithmetic) Evaluate(t *tuple.Tuple) (types.Field, error) {
	left, err := a.Left.Evaluate(t)
	if err != nil {
		return nil, err
	}
	right, err := a.Right.Evaluate(t)
	if err != nil {
		return nil, err
	}

	// null propagates through arithmetic
	if left == nil || right == nil {
		return nil, nil
	}

	if !left.Type().Numeric() || !right.Type().Numeric() {
		return nil, qerr.Newf(qerr.TypeError, "arithmetic requires numeric operands, got %v and %v",
			left.Type(), right.Type())
	}

	li, lInt := left.(*types.IntField)
	ri, rInt := right.(*types.IntField)
	if lInt && rInt {
		return intArith(a.Op, li.Value, ri.Value)
	}
	return floatArith(a.Op, numericValue(left), numericValue(right))
}

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right)
}

func intArith(op ArithOp, l, r int64) (types.Field, error) {
	switch op {
	case Add:
		return types.NewIntField(l + r), nil
	case Subtract:
		return types.NewIntField(l - r), nil
	case Multiply:
		return types.NewIntField(l * r), nil
	case Divide:
		if r == 0 {
			return nil, qerr.New(qerr.ArithmeticError, "division by zero")
		}
		return types.NewIntField(l / r), nil
	default:
		return nil, qerr.Newf(qerr.TypeError, "unsupported arithmetic operator %v", op)
	}
}

func floatArith(op ArithOp, l, r float64) (types.Field, error) {
	switch op {
	case Add:
		return types.NewFloatField(l + r), nil
	case Subtract:
		return types.NewFloatField(l - r), nil
	case Multiply:
		return types.NewFloatField(l * r), nil
	case Divide:
		if r == 0 {
			return nil, qerr.New(qerr.ArithmeticError, "division by zero")
		}
		return types.NewFloatField(l / r), nil
	default:
		return nil, qerr.Newf(qerr.TypeError, "unsupported arithmetic operator %v", op)
	}
}

func numericValue(f types.Field) float64 {
	switch v := f.(type) {
	case *types.IntField:
		return float64(v.Value)
	case *types.FloatField:
		return v.Value
	default:
		return 0
	}
}
