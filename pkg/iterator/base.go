package iterator

import (
	"fmt"

	"relcore/pkg/tuple"
)

// BaseIterator implements the caching logic and state management shared by
// all operators. It handles tuple lookahead, open/close state, and delegation
// to the operator's specific readNext function.
type BaseIterator struct {
	nextTuple    *tuple.Tuple // Cached next tuple for lookahead
	opened       bool         // Whether the iterator has been opened
	readNextFunc ReadNextFunc // Reads the next tuple from the underlying source
}

// NewBaseIterator creates a new base iterator with the given readNext
// function. The iterator starts closed and must be marked opened before use.
func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{
		readNextFunc: readNextFunc,
	}
}

// HasNext checks if there is a next tuple available without consuming it,
// caching the tuple read ahead if not already cached.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return false, err
		}
	}
	return it.nextTuple != nil, nil
}

// Next returns the next tuple and advances the iterator. If a tuple was
// cached by HasNext() it is returned and the cache cleared; otherwise the
// next tuple is read from the underlying source.
func (it *BaseIterator) Next() (*tuple.Tuple, error) {
	if !it.opened {
		return nil, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return nil, err
		}
		if it.nextTuple == nil {
			return nil, fmt.Errorf("no more tuples")
		}
	}

	result := it.nextTuple
	it.nextTuple = nil
	return result, nil
}

// Rewind clears the lookahead cache. Operators reset their own read state
// and children before delegating here.
func (it *BaseIterator) Rewind() error {
	it.nextTuple = nil
	return nil
}

// Close clears cached state and marks the iterator closed.
func (it *BaseIterator) Close() error {
	it.nextTuple = nil
	it.opened = false
	return nil
}

// MarkOpened marks the iterator as opened and ready for use.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.nextTuple = nil
}
