package execution

import (
	"fmt"

	"relcore/pkg/iterator"
	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
)

// NoLimit disables the row cap so the operator only applies its offset.
const NoLimit int64 = -1

// Limit passes through at most limit rows after skipping offset rows.
// A limit of zero yields no rows.
type Limit struct {
	*iterator.UnaryOperator
	limit   int64
	offset  int64
	emitted int64
}

// NewLimit creates a limit operator over the child. The limit must be
// non-negative or NoLimit; the offset must be non-negative.
func NewLimit(child iterator.RowIterator, limit, offset int64) (*Limit, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if limit < 0 && limit != NoLimit {
		return nil, qerr.Newf(qerr.InvalidArgument, "limit cannot be negative, got %d", limit)
	}
	if offset < 0 {
		return nil, qerr.Newf(qerr.InvalidArgument, "offset cannot be negative, got %d", offset)
	}

	l := &Limit{
		limit:  limit,
		offset: offset,
	}
	op, err := iterator.NewUnaryOperator(child, l.readNext)
	if err != nil {
		return nil, err
	}
	l.UnaryOperator = op
	return l, nil
}

// Open opens the child and skips past the offset rows.
func (l *Limit) Open() error {
	if err := l.UnaryOperator.Open(); err != nil {
		return err
	}
	l.emitted = 0
	return l.skipOffset()
}

func (l *Limit) skipOffset() error {
	for skipped := int64(0); skipped < l.offset; skipped++ {
		t, err := l.FetchNext()
		if err != nil {
			return fmt.Errorf("failed to skip offset rows: %w", err)
		}
		if t == nil {
			return nil
		}
	}
	return nil
}

func (l *Limit) readNext() (*tuple.Tuple, error) {
	if l.limit != NoLimit && l.emitted >= l.limit {
		return nil, nil
	}

	t, err := l.FetchNext()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}

	l.emitted++
	return t, nil
}

// Rewind restarts the child and re-skips the offset.
func (l *Limit) Rewind() error {
	if err := l.UnaryOperator.Rewind(); err != nil {
		return err
	}
	l.emitted = 0
	return l.skipOffset()
}
