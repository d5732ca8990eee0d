package execution

import (
	"fmt"
	"strings"

	"relcore/pkg/iterator"
	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
)

// JoinCondition is one equality condition of an equi-join: a column of the
// left input must equal a column of the right input.
type JoinCondition struct {
	LeftColumn  string
	RightColumn string
}

// HashJoin computes an inner equi-join between two row sources.
//
// The algorithm works in two phases:
// 1. Build phase: creates a hash table from the right child keyed by the
// right-side join columns.
// 2. Probe phase: for each left tuple, looks up matches in the hash table
// and emits one combined tuple per match.
//
// Rows whose join key contains a null never match: null is not equal to
// null, so such rows are skipped during build and produce no matches during
// probe. Unmatched left rows are dropped (inner join only).
//
// Time complexity: O(|L| + |R|); space complexity: O(|R|) for the hash table.
type HashJoin struct {
	*iterator.BinaryOperator
	conditions []JoinCondition

	leftIndexes  []int                     // Join column positions in the left schema
	rightIndexes []int                     // Join column positions in the right schema
	combinedTd   *tuple.TupleDescription   // Output schema: left columns then right columns
	hashTable    map[string][]*tuple.Tuple // Join key -> matching right tuples
	built        bool                      // Whether the hash table has been built

	currentLeft    *tuple.Tuple   // Left tuple currently being matched
	currentMatches []*tuple.Tuple // Right tuples matching currentLeft
	matchIndex     int            // Position within currentMatches
}

// NewHashJoin creates an inner equi-join of left and right on the given
// conditions. rightQualifier (normally the right table's name) qualifies
// right-side column names that collide with left-side names in the output
// schema. Join columns must exist in their respective inputs and be of
// comparable types.
func NewHashJoin(left, right iterator.RowIterator, conditions []JoinCondition, rightQualifier string) (*HashJoin, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("join children cannot be nil")
	}
	if len(conditions) == 0 {
		return nil, qerr.New(qerr.PlanError, "join requires at least one equality condition")
	}

	leftTd := left.GetTupleDesc()
	rightTd := right.GetTupleDesc()

	leftIndexes := make([]int, len(conditions))
	rightIndexes := make([]int, len(conditions))
	for i, cond := range conditions {
		li, err := leftTd.FindFieldIndex(cond.LeftColumn)
		if err != nil {
			return nil, err
		}
		ri, err := rightTd.FindFieldIndex(cond.RightColumn)
		if err != nil {
			return nil, err
		}

		lt, _ := leftTd.TypeAtIndex(li)
		rt, _ := rightTd.TypeAtIndex(ri)
		if lt != rt && !(lt.Numeric() && rt.Numeric()) {
			return nil, qerr.Newf(qerr.TypeError, "cannot join %s (%v) with %s (%v)",
				cond.LeftColumn, lt, cond.RightColumn, rt)
		}

		leftIndexes[i] = li
		rightIndexes[i] = ri
	}

	hj := &HashJoin{
		conditions:   conditions,
		leftIndexes:  leftIndexes,
		rightIndexes: rightIndexes,
		combinedTd:   tuple.Combine(leftTd, rightTd, rightQualifier),
		matchIndex:   -1,
	}
	op, err := iterator.NewBinaryOperator(left, right, hj.readNext)
	if err != nil {
		return nil, err
	}
	hj.BinaryOperator = op
	return hj, nil
}

// Open opens both children and builds the hash table from the right child.
func (hj *HashJoin) Open() error {
	if err := hj.BinaryOperator.Open(); err != nil {
		return err
	}
	return hj.buildHashTable()
}

// Close releases the hash table and all iteration state.
func (hj *HashJoin) Close() error {
	hj.hashTable = nil
	hj.built = false
	hj.currentMatches = nil
	hj.currentLeft = nil
	hj.matchIndex = -1

	return hj.BinaryOperator.Close()
}

// Rewind restarts the probe phase from the first left tuple.
// The hash table is preserved; only the iteration state is reset.
func (hj *HashJoin) Rewind() error {
	hj.currentMatches = nil
	hj.currentLeft = nil
	hj.matchIndex = -1

	return hj.BinaryOperator.Rewind()
}

// GetTupleDesc returns the join output schema: all left columns followed by
// all right columns, with colliding right names qualified.
func (hj *HashJoin) GetTupleDesc() *tuple.TupleDescription {
	return hj.combinedTd
}

// readNext produces the next joined tuple: remaining matches for the current
// left tuple first, then the next left tuple that has matches.
func (hj *HashJoin) readNext() (*tuple.Tuple, error) {
	if hj.hasCurrentMatches() {
		return hj.nextMatch()
	}
	return hj.findNextJoinedTuple()
}

func (hj *HashJoin) hasCurrentMatches() bool {
	return hj.currentMatches != nil &&
		hj.matchIndex >= 0 &&
		hj.matchIndex < len(hj.currentMatches)
}

// nextMatch combines the current left tuple with its next matching right
// tuple, clearing the match state once all matches are consumed.
func (hj *HashJoin) nextMatch() (*tuple.Tuple, error) {
	result, err := tuple.CombineTuples(hj.currentLeft, hj.currentMatches[hj.matchIndex], hj.combinedTd)
	hj.matchIndex++

	if hj.matchIndex >= len(hj.currentMatches) {
		hj.currentMatches = nil
		hj.currentLeft = nil
		hj.matchIndex = -1
	}

	return result, err
}

// findNextJoinedTuple advances through left tuples until one has matches in
// the hash table, then returns the first combined result.
func (hj *HashJoin) findNextJoinedTuple() (*tuple.Tuple, error) {
	for {
		leftTuple, err := hj.FetchLeft()
		if err != nil {
			return nil, err
		}
		if leftTuple == nil {
			return nil, nil
		}

		key, ok, err := joinKey(leftTuple, hj.leftIndexes)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // null join key never matches
		}

		matches := hj.hashTable[key]
		if len(matches) == 0 {
			continue
		}

		hj.currentLeft = leftTuple
		hj.currentMatches = matches
		hj.matchIndex = 1 // index 0 is returned now, next call starts at 1
		return tuple.CombineTuples(leftTuple, matches[0], hj.combinedTd)
	}
}

// buildHashTable reads every right tuple and indexes it by its join key.
// Tuples with a null in any join column are excluded: they can never match.
func (hj *HashJoin) buildHashTable() error {
	if hj.built {
		return nil
	}

	hj.hashTable = make(map[string][]*tuple.Tuple)

	for {
		rightTuple, err := hj.FetchRight()
		if err != nil {
			return qerr.Wrap(err, "BuildHashTable", "HashJoin")
		}
		if rightTuple == nil {
			break
		}

		key, ok, err := joinKey(rightTuple, hj.rightIndexes)
		if err != nil {
			return qerr.Wrap(err, "BuildHashTable", "HashJoin")
		}
		if ok {
			hj.hashTable[key] = append(hj.hashTable[key], rightTuple)
		}
	}

	hj.built = true
	return nil
}

// joinKey extracts the canonical hash key for a tuple's join columns.
// ok is false when any key component is null.
func joinKey(t *tuple.Tuple, indexes []int) (key string, ok bool, err error) {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		field, err := t.GetField(idx)
		if err != nil {
			return "", false, err
		}
		if field == nil {
			return "", false, nil
		}
		parts[i] = field.KeyString()
	}
	return strings.Join(parts, "\x1f"), true, nil
}
