package execution

import (
	"testing"

	"relcore/pkg/iterator"
	"relcore/pkg/tables"
	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// flightTable builds a small flights table used across operator tests.
//
//	id | aircraft   | mileage
//	 1 | Boeing 747 | 135
//	 2 | Boeing 777 | 4370
//	 3 | Airbus A330| 2078
//	 4 | Boeing 747 | 1765
//	 5 | null       | 531
func flightTable(t *testing.T) *tables.Table {
	t.Helper()

	tbl, err := tables.NewTable("flight", []tables.Column{
		{Name: "id", Type: types.IntType},
		{Name: "aircraft", Type: types.StringType},
		{Name: "mileage", Type: types.IntType},
	})
	if err != nil {
		t.Fatalf("failed to create flight table: %v", err)
	}

	rows := []struct {
		id       int64
		aircraft types.Field
		mileage  int64
	}{
		{1, types.NewStringField("Boeing 747"), 135},
		{2, types.NewStringField("Boeing 777"), 4370},
		{3, types.NewStringField("Airbus A330"), 2078},
		{4, types.NewStringField("Boeing 747"), 1765},
		{5, nil, 531},
	}
	for _, r := range rows {
		err := tbl.AppendRow(types.NewIntField(r.id), r.aircraft, types.NewIntField(r.mileage))
		if err != nil {
			t.Fatalf("failed to append flight row: %v", err)
		}
	}
	return tbl
}

// bookingTable builds bookings referencing flights by flight_id. One booking
// has a null flight_id, which must never join.
func bookingTable(t *testing.T) *tables.Table {
	t.Helper()

	tbl, err := tables.NewTable("booking", []tables.Column{
		{Name: "id", Type: types.IntType},
		{Name: "flight_id", Type: types.IntType},
		{Name: "status", Type: types.StringType},
	})
	if err != nil {
		t.Fatalf("failed to create booking table: %v", err)
	}

	rows := []struct {
		id       int64
		flightID types.Field
		status   string
	}{
		{10, types.NewIntField(1), "Gold"},
		{11, types.NewIntField(1), "Silver"},
		{12, types.NewIntField(2), "Gold"},
		{13, types.NewIntField(4), "Gold"},
		{14, nil, "Gold"},
	}
	for _, r := range rows {
		err := tbl.AppendRow(types.NewIntField(r.id), r.flightID, types.NewStringField(r.status))
		if err != nil {
			t.Fatalf("failed to append booking row: %v", err)
		}
	}
	return tbl
}

// scanOf opens nothing; it just builds a scan over the table for use as an
// operator child.
func scanOf(t *testing.T, tbl *tables.Table) *TableScan {
	t.Helper()
	scan, err := NewTableScan(tbl)
	if err != nil {
		t.Fatalf("failed to create scan: %v", err)
	}
	return scan
}

// runAll opens the operator, drains it and closes it.
func runAll(t *testing.T, op iterator.RowIterator) []*tuple.Tuple {
	t.Helper()

	if err := op.Open(); err != nil {
		t.Fatalf("failed to open operator: %v", err)
	}
	defer op.Close()

	results, err := iterator.Collect(op)
	if err != nil {
		t.Fatalf("failed to collect results: %v", err)
	}
	return results
}

// intAt reads an integer column from a result row.
func intAt(t *testing.T, row *tuple.Tuple, idx int) int64 {
	t.Helper()

	field, err := row.GetField(idx)
	if err != nil {
		t.Fatalf("failed to get field %d: %v", idx, err)
	}
	intField, ok := field.(*types.IntField)
	if !ok {
		t.Fatalf("field %d is %T, expected *types.IntField", idx, field)
	}
	return intField.Value
}

// stringAt reads a string column from a result row.
func stringAt(t *testing.T, row *tuple.Tuple, idx int) string {
	t.Helper()

	field, err := row.GetField(idx)
	if err != nil {
		t.Fatalf("failed to get field %d: %v", idx, err)
	}
	strField, ok := field.(*types.StringField)
	if !ok {
		t.Fatalf("field %d is %T, expected *types.StringField", idx, field)
	}
	return strField.Value
}

// floatAt reads a float column from a result row.
func floatAt(t *testing.T, row *tuple.Tuple, idx int) float64 {
	t.Helper()

	field, err := row.GetField(idx)
	if err != nil {
		t.Fatalf("failed to get field %d: %v", idx, err)
	}
	fltField, ok := field.(*types.FloatField)
	if !ok {
		t.Fatalf("field %d is %T, expected *types.FloatField", idx, field)
	}
	return fltField.Value
}

// nullAt asserts that a result column is null.
func nullAt(t *testing.T, row *tuple.Tuple, idx int) {
	t.Helper()

	field, err := row.GetField(idx)
	if err != nil {
		t.Fatalf("failed to get field %d: %v", idx, err)
	}
	if field != nil {
		t.Fatalf("field %d = %v, expected null", idx, field)
	}
}
