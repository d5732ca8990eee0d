package qerr

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a class of query error. Every error produced by the
// engine carries exactly one code, so callers can branch on the failure
// class without string matching.
type Code string

const (
	// NotFound reports a reference to a table or column that does not exist.
	NotFound Code = "NOT_FOUND"

	// TypeError reports an operand type mismatch, such as comparing text
	// to an integer.
	TypeError Code = "TYPE_ERROR"

	// ArithmeticError reports invalid arithmetic, currently division by zero.
	ArithmeticError Code = "ARITHMETIC_ERROR"

	// PlanError reports a malformed logical plan: an unknown reference in a
	// projection, an aggregate over a non-existent column, and similar misuse.
	PlanError Code = "PLAN_ERROR"

	// InvalidArgument reports an argument outside its valid range, such as a
	// negative LIMIT.
	InvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is a structured query error with context about where in the engine
// it originated. All errors are deterministic logic errors; none are
// transient, so there is no retry classification.
type Error struct {
	// Code is the failure class of this error.
	Code Code

	// Message is a human-readable description of what went wrong.
	Message string

	// Operation identifies the operation being performed when the error
	// occurred. Examples: "Execute", "BuildHashTable", "EvaluatePredicate".
	Operation string

	// Component identifies the engine component where the error originated.
	// Examples: "TableStore", "HashJoin", "Aggregate", "Executor".
	Component string

	// Cause is the underlying error, if this error wraps one.
	Cause error
}

// New creates a new Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches engine context to an existing error. If err is already an
// *Error, its operation and component are filled in only where unset, so the
// innermost context wins. Returns nil when err is nil.
func Wrap(err error, operation, component string) *Error {
	if err == nil {
		return nil
	}

	var qe *Error
	if errors.As(err, &qe) {
		if qe.Operation == "" {
			qe.Operation = operation
		}
		if qe.Component == "" {
			qe.Component = component
		}
		return qe
	}

	return &Error{
		Code:      PlanError,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
	}
}

// Error implements the standard error interface.
//
// The format follows the pattern:
// [CODE] message (operation: Operation, component: Component) caused by: underlying error
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As
// traversal through wrapped errors.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HasCode reports whether err (or any error it wraps) is an *Error carrying
// the given code.
func HasCode(err error, code Code) bool {
	var qe *Error
	if !errors.As(err, &qe) {
		return false
	}
	return qe.Code == code
}
