package tuple

import (
	"testing"

	"relcore/pkg/types"
)

func mustTupleDesc(t *testing.T, fieldTypes []types.Type, names []string) *TupleDescription {
	t.Helper()
	td, err := NewTupleDesc(fieldTypes, names)
	if err != nil {
		t.Fatalf("NewTupleDesc failed: %v", err)
	}
	return td
}

func TestNewTupleDesc_Validation(t *testing.T) {
	if _, err := NewTupleDesc([]types.Type{}, []string{}); err == nil {
		t.Error("expected error for empty schema")
	}

	if _, err := NewTupleDesc([]types.Type{types.IntType}, []string{"a", "b"}); err == nil {
		t.Error("expected error for mismatched names length")
	}
}

func TestSetField_TypeChecked(t *testing.T) {
	td := mustTupleDesc(t, []types.Type{types.IntType, types.StringType}, []string{"id", "name"})
	tup := NewTuple(td)

	if err := tup.SetField(0, types.NewIntField(1)); err != nil {
		t.Errorf("setting int into int column failed: %v", err)
	}

	if err := tup.SetField(0, types.NewStringField("x")); err == nil {
		t.Error("expected type mismatch setting string into int column")
	}

	// nil is a null and is accepted by any column
	if err := tup.SetField(1, nil); err != nil {
		t.Errorf("setting null failed: %v", err)
	}

	f, err := tup.GetField(1)
	if err != nil {
		t.Fatalf("GetField failed: %v", err)
	}
	if f != nil {
		t.Errorf("expected null field, got %v", f)
	}
}

func TestFindFieldIndex(t *testing.T) {
	td := mustTupleDesc(t,
		[]types.Type{types.IntType, types.StringType, types.IntType},
		[]string{"id", "name", "booking.id"})

	idx, err := td.FindFieldIndex("name")
	if err != nil || idx != 1 {
		t.Errorf("FindFieldIndex(name) = %d, %v; expected 1, nil", idx, err)
	}

	idx, err = td.FindFieldIndex("booking.id")
	if err != nil || idx != 2 {
		t.Errorf("FindFieldIndex(booking.id) = %d, %v; expected 2, nil", idx, err)
	}

	if _, err := td.FindFieldIndex("missing"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestFindFieldIndex_SuffixMatch(t *testing.T) {
	td := mustTupleDesc(t,
		[]types.Type{types.IntType, types.StringType},
		[]string{"flight.id", "aircraft"})

	idx, err := td.FindFieldIndex("id")
	if err != nil || idx != 0 {
		t.Errorf("bare name should resolve qualified column: got %d, %v", idx, err)
	}
}

func TestCombine_QualifiesCollidingNames(t *testing.T) {
	left := mustTupleDesc(t, []types.Type{types.IntType, types.StringType}, []string{"id", "aircraft"})
	right := mustTupleDesc(t, []types.Type{types.IntType, types.IntType}, []string{"id", "flight_id"})

	combined := Combine(left, right, "booking")
	if combined.NumFields() != 4 {
		t.Fatalf("expected 4 columns, got %d", combined.NumFields())
	}

	expected := []string{"id", "aircraft", "booking.id", "flight_id"}
	for i, want := range expected {
		got, _ := combined.GetFieldName(i)
		if got != want {
			t.Errorf("column %d = %q, expected %q", i, got, want)
		}
	}
}

func TestCombineTuples(t *testing.T) {
	leftTd := mustTupleDesc(t, []types.Type{types.IntType}, []string{"a"})
	rightTd := mustTupleDesc(t, []types.Type{types.StringType}, []string{"b"})

	left := NewTuple(leftTd)
	if err := left.SetField(0, types.NewIntField(7)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	right := NewTuple(rightTd)
	if err := right.SetField(0, types.NewStringField("x")); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	combined, err := CombineTuples(left, right, Combine(leftTd, rightTd, "r"))
	if err != nil {
		t.Fatalf("CombineTuples failed: %v", err)
	}

	f0, _ := combined.GetField(0)
	if !f0.Equals(types.NewIntField(7)) {
		t.Errorf("combined field 0 = %v, expected 7", f0)
	}
	f1, _ := combined.GetField(1)
	if !f1.Equals(types.NewStringField("x")) {
		t.Errorf("combined field 1 = %v, expected x", f1)
	}
}

func TestClone_SharesValuesNotSlice(t *testing.T) {
	td := mustTupleDesc(t, []types.Type{types.IntType}, []string{"a"})
	orig := NewTuple(td)
	if err := orig.SetField(0, types.NewIntField(1)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	cloned := orig.Clone()
	if err := cloned.SetField(0, types.NewIntField(2)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	f, _ := orig.GetField(0)
	if !f.Equals(types.NewIntField(1)) {
		t.Error("mutating the clone must not affect the original")
	}
}
