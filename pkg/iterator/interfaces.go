package iterator

import "relcore/pkg/tuple"

// RowIterator defines the contract for all operators in the execution
// pipeline. It provides a standardized interface for traversing collections
// of tuples from table scans and intermediate query results.
type RowIterator interface {
	// Open initializes the iterator and prepares it for tuple retrieval.
	// This method must be called before any other iterator operations.
	Open() error

	// HasNext checks if there are more tuples available without consuming them.
	// This method provides lookahead and can be called multiple times without
	// advancing the iterator position. The iterator must be opened first.
	HasNext() (bool, error)

	// Next retrieves and returns the next tuple, advancing the position.
	// Use HasNext() to check availability before calling Next().
	Next() (*tuple.Tuple, error)

	// Rewind resets the iterator position to the beginning of the sequence.
	// After rewinding, the next call to Next() returns the first tuple again.
	Rewind() error

	// Close releases all resources associated with the iterator and marks it
	// as closed. Calling Close() on an already closed iterator is safe.
	Close() error

	// GetTupleDesc returns the schema for tuples produced by this iterator.
	// This method can be called regardless of iterator state.
	GetTupleDesc() *tuple.TupleDescription
}

// ReadNextFunc is the function signature for reading the next tuple from an
// operator's underlying source. Returning (nil, nil) signals end of data.
type ReadNextFunc func() (*tuple.Tuple, error)
