package execution

import (
	"fmt"

	"relcore/pkg/expr"
	"relcore/pkg/iterator"
	"relcore/pkg/tuple"
)

// Filter applies a predicate to each tuple from its source operator,
// passing through only tuples for which the predicate evaluates to True.
// False and Unknown both reject, per SQL null semantics.
type Filter struct {
	*iterator.UnaryOperator
	predicate expr.Predicate
}

// NewFilter creates a new Filter operator with the specified predicate and
// source iterator.
func NewFilter(predicate expr.Predicate, source iterator.RowIterator) (*Filter, error) {
	if predicate == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}

	f := &Filter{
		predicate: predicate,
	}

	unaryOp, err := iterator.NewUnaryOperator(source, f.readNext)
	if err != nil {
		return nil, err
	}
	f.UnaryOperator = unaryOp

	return f, nil
}

// readNext reads tuples from the source until one satisfies the predicate
// or the input is exhausted.
func (f *Filter) readNext() (*tuple.Tuple, error) {
	for {
		t, err := f.FetchNext()
		if err != nil || t == nil {
			return t, err
		}

		passes, err := f.predicate.Evaluate(t)
		if err != nil {
			return nil, fmt.Errorf("predicate evaluation failed: %w", err)
		}

		if passes.IsTrue() {
			return t, nil
		}
	}
}
