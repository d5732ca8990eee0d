package types

// TriState is a three-valued boolean following SQL null semantics
// (Kleene logic). Any comparison involving a null value evaluates to
// Unknown, and Unknown propagates through AND/OR/NOT per the Kleene
// truth tables. A filter keeps a row only when its predicate evaluates
// to True; both False and Unknown reject.
type TriState int

const (
	False TriState = iota
	True
	Unknown
)

// TriFromBool lifts a two-valued boolean into a TriState.
func TriFromBool(b bool) TriState {
	if b {
		return True
	}
	return False
}

// And returns the Kleene conjunction of two tri-state values.
// False dominates: False AND Unknown is False.
func (t TriState) And(other TriState) TriState {
	if t == False || other == False {
		return False
	}
	if t == Unknown || other == Unknown {
		return Unknown
	}
	return True
}

// Or returns the Kleene disjunction of two tri-state values.
// True dominates: True OR Unknown is True.
func (t TriState) Or(other TriState) TriState {
	if t == True || other == True {
		return True
	}
	if t == Unknown || other == Unknown {
		return Unknown
	}
	return False
}

// Not returns the Kleene negation. NOT Unknown stays Unknown.
func (t TriState) Not() TriState {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// IsTrue reports whether the value is definitely true. This is the test
// filters apply to decide whether a row survives.
func (t TriState) IsTrue() bool {
	return t == True
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
