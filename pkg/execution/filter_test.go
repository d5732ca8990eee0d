package execution

import (
	"testing"

	"relcore/pkg/expr"
	"relcore/pkg/types"
)

func TestFilterKeepsOnlyMatchingRows(t *testing.T) {
	pred := expr.NewCompare(types.GreaterThan,
		expr.NewColumn("mileage"), expr.Int(1000))

	filter, err := NewFilter(pred, scanOf(t, flightTable(t)))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	results := runAll(t, filter)

	if len(results) != 3 {
		t.Fatalf("expected 3 rows with mileage > 1000, got %d", len(results))
	}
	for _, row := range results {
		if got := intAt(t, row, 2); got <= 1000 {
			t.Errorf("filter passed mileage %d", got)
		}
	}
}

// A comparison against a null column is Unknown, and Unknown rows are
// rejected the same as False rows.
func TestFilterRejectsUnknown(t *testing.T) {
	pred := expr.Eq("aircraft", types.NewStringField("Boeing 747"))

	filter, err := NewFilter(pred, scanOf(t, flightTable(t)))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	results := runAll(t, filter)

	// Rows 1 and 4 match; row 5's null aircraft is Unknown, not a match.
	if len(results) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(results))
	}
}

func TestFilterNotDoesNotRecoverUnknown(t *testing.T) {
	inner := expr.Eq("aircraft", types.NewStringField("Boeing 747"))
	pred := expr.NewNot(inner)

	filter, err := NewFilter(pred, scanOf(t, flightTable(t)))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	results := runAll(t, filter)

	// NOT Unknown is still Unknown, so the null-aircraft row stays out:
	// only rows 2 and 3 pass.
	if len(results) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(results))
	}
	for _, row := range results {
		if aircraft := stringAt(t, row, 1); aircraft == "Boeing 747" {
			t.Errorf("NOT filter passed a Boeing 747 row")
		}
	}
}

func TestFilterWithBetween(t *testing.T) {
	pred := expr.NewBetween(expr.NewColumn("mileage"), expr.Int(500), expr.Int(2100))

	filter, err := NewFilter(pred, scanOf(t, flightTable(t)))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	results := runAll(t, filter)

	// Mileages 531, 1765, 2078 fall in [500, 2100].
	if len(results) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(results))
	}
}

func TestFilterWithLike(t *testing.T) {
	pred := expr.NewLike(expr.NewColumn("aircraft"), "Boeing%")

	filter, err := NewFilter(pred, scanOf(t, flightTable(t)))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	results := runAll(t, filter)

	if len(results) != 3 {
		t.Fatalf("expected 3 Boeing rows, got %d", len(results))
	}
}

func TestFilterRewind(t *testing.T) {
	pred := expr.NewCompare(types.LessThan,
		expr.NewColumn("mileage"), expr.Int(2000))

	filter, err := NewFilter(pred, scanOf(t, flightTable(t)))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	if err := filter.Open(); err != nil {
		t.Fatalf("failed to open filter: %v", err)
	}
	defer filter.Close()

	firstPass := 0
	for {
		hasNext, err := filter.HasNext()
		if err != nil {
			t.Fatalf("HasNext failed: %v", err)
		}
		if !hasNext {
			break
		}
		if _, err := filter.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		firstPass++
	}

	if err := filter.Rewind(); err != nil {
		t.Fatalf("failed to rewind: %v", err)
	}

	secondPass := 0
	for {
		hasNext, err := filter.HasNext()
		if err != nil {
			t.Fatalf("HasNext failed after rewind: %v", err)
		}
		if !hasNext {
			break
		}
		if _, err := filter.Next(); err != nil {
			t.Fatalf("Next failed after rewind: %v", err)
		}
		secondPass++
	}

	if firstPass != secondPass {
		t.Errorf("first pass returned %d rows, second pass %d", firstPass, secondPass)
	}
}

func TestNewFilterNilPredicate(t *testing.T) {
	if _, err := NewFilter(nil, scanOf(t, flightTable(t))); err == nil {
		t.Error("expected error for nil predicate")
	}
}
