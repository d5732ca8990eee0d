package execution

import (
	"math"
	"testing"

	"relcore/pkg/qerr"
	"relcore/pkg/tables"
	"relcore/pkg/types"
)

func TestAggregateCountStarAndCountColumn(t *testing.T) {
	agg, err := NewAggregate(scanOf(t, flightTable(t)), nil, []AggregateSpec{
		{Op: Count},
		{Op: Count, Column: "aircraft"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	if len(results) != 1 {
		t.Fatalf("grand aggregate should produce 1 row, got %d", len(results))
	}
	if got := intAt(t, results[0], 0); got != 5 {
		t.Errorf("count(*) = %d, expected 5", got)
	}
	// One aircraft value is null, so count(aircraft) drops it.
	if got := intAt(t, results[0], 1); got != 4 {
		t.Errorf("count(aircraft) = %d, expected 4", got)
	}
}

func TestAggregateGroupBy(t *testing.T) {
	agg, err := NewAggregate(scanOf(t, flightTable(t)), []string{"aircraft"}, []AggregateSpec{
		{Op: Count, Alias: "flights"},
		{Op: Sum, Column: "mileage", Alias: "total"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	// Boeing 747, Boeing 777, Airbus A330, plus a singleton group for the
	// null aircraft row.
	if len(results) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(results))
	}

	byAircraft := make(map[string][2]int64)
	var sawNullGroup bool
	for _, row := range results {
		key, err := row.GetField(0)
		if err != nil {
			t.Fatalf("failed to get group key: %v", err)
		}
		if key == nil {
			sawNullGroup = true
			if got := intAt(t, row, 1); got != 1 {
				t.Errorf("null group count = %d, expected 1", got)
			}
			continue
		}
		byAircraft[key.(*types.StringField).Value] = [2]int64{intAt(t, row, 1), intAt(t, row, 2)}
	}

	if !sawNullGroup {
		t.Error("null aircraft row did not form its own group")
	}
	if got := byAircraft["Boeing 747"]; got != [2]int64{2, 1900} {
		t.Errorf("Boeing 747 group = %v, expected [2 1900]", got)
	}
	if got := byAircraft["Boeing 777"]; got != [2]int64{1, 4370} {
		t.Errorf("Boeing 777 group = %v, expected [1 4370]", got)
	}
}

func TestAggregateAvgIsFloat(t *testing.T) {
	tbl, err := tables.NewTable("m", []tables.Column{
		{Name: "v", Type: types.IntType},
	})
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	for _, v := range []int64{814, 1146} {
		if err := tbl.AppendRow(types.NewIntField(v)); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	agg, err := NewAggregate(scanOf(t, tbl), nil, []AggregateSpec{
		{Op: Avg, Column: "v"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	if got := floatAt(t, results[0], 0); got != 980.0 {
		t.Errorf("avg = %v, expected 980.0", got)
	}
}

func TestAggregateAllNullGroupYieldsNull(t *testing.T) {
	tbl, err := tables.NewTable("m", []tables.Column{
		{Name: "g", Type: types.StringType},
		{Name: "v", Type: types.IntType},
	})
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := tbl.AppendRow(types.NewStringField("a"), nil); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	agg, err := NewAggregate(scanOf(t, tbl), []string{"g"}, []AggregateSpec{
		{Op: Sum, Column: "v"},
		{Op: Avg, Column: "v"},
		{Op: Min, Column: "v"},
		{Op: Max, Column: "v"},
		{Op: Count, Column: "v"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	if len(results) != 1 {
		t.Fatalf("expected 1 group, got %d", len(results))
	}
	nullAt(t, results[0], 1) // sum
	nullAt(t, results[0], 2) // avg
	nullAt(t, results[0], 3) // min
	nullAt(t, results[0], 4) // max
	if got := intAt(t, results[0], 5); got != 0 {
		t.Errorf("count over all-null column = %d, expected 0", got)
	}
}

func TestAggregateEmptyInputWithoutGroupBy(t *testing.T) {
	tbl, err := tables.NewTable("empty", []tables.Column{
		{Name: "v", Type: types.IntType},
	})
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	agg, err := NewAggregate(scanOf(t, tbl), nil, []AggregateSpec{
		{Op: Count},
		{Op: Sum, Column: "v"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	if len(results) != 1 {
		t.Fatalf("grand aggregate over empty input should produce 1 row, got %d", len(results))
	}
	if got := intAt(t, results[0], 0); got != 0 {
		t.Errorf("count(*) over empty input = %d, expected 0", got)
	}
	nullAt(t, results[0], 1)
}

func TestAggregateEmptyInputWithGroupBy(t *testing.T) {
	tbl, err := tables.NewTable("empty", []tables.Column{
		{Name: "g", Type: types.StringType},
		{Name: "v", Type: types.IntType},
	})
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	agg, err := NewAggregate(scanOf(t, tbl), []string{"g"}, []AggregateSpec{
		{Op: Count},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	if len(results) != 0 {
		t.Fatalf("grouped aggregate over empty input should produce 0 rows, got %d", len(results))
	}
}

func TestAggregateGroupsNegativeZeroWithZero(t *testing.T) {
	tbl, err := tables.NewTable("m", []tables.Column{
		{Name: "g", Type: types.FloatType},
	})
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := tbl.AppendRow(types.NewFloatField(0)); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	if err := tbl.AppendRow(types.NewFloatField(math.Copysign(0, -1))); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	agg, err := NewAggregate(scanOf(t, tbl), []string{"g"}, []AggregateSpec{
		{Op: Count},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	// 0.0 and -0.0 compare equal, so they form one group.
	if len(results) != 1 {
		t.Fatalf("expected 1 group for 0.0 and -0.0, got %d", len(results))
	}
	if got := intAt(t, results[0], 1); got != 2 {
		t.Errorf("group count = %d, expected 2", got)
	}
}

func TestAggregateMinMax(t *testing.T) {
	agg, err := NewAggregate(scanOf(t, flightTable(t)), nil, []AggregateSpec{
		{Op: Min, Column: "mileage"},
		{Op: Max, Column: "mileage"},
		{Op: Min, Column: "aircraft"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	results := runAll(t, agg)

	if got := intAt(t, results[0], 0); got != 135 {
		t.Errorf("min(mileage) = %d, expected 135", got)
	}
	if got := intAt(t, results[0], 1); got != 4370 {
		t.Errorf("max(mileage) = %d, expected 4370", got)
	}
	if got := stringAt(t, results[0], 2); got != "Airbus A330" {
		t.Errorf("min(aircraft) = %q, expected %q", got, "Airbus A330")
	}
}

func TestAggregateOutputNames(t *testing.T) {
	agg, err := NewAggregate(scanOf(t, flightTable(t)), []string{"aircraft"}, []AggregateSpec{
		{Op: Count},
		{Op: Avg, Column: "mileage", Alias: "avg_miles"},
	})
	if err != nil {
		t.Fatalf("failed to create aggregate: %v", err)
	}

	td := agg.GetTupleDesc()
	expected := []string{"aircraft", "count(*)", "avg_miles"}
	for i, name := range expected {
		got, err := td.GetFieldName(i)
		if err != nil {
			t.Fatalf("failed to read output name %d: %v", i, err)
		}
		if got != name {
			t.Errorf("output column %d = %q, expected %q", i, got, name)
		}
	}
}

func TestAggregateErrors(t *testing.T) {
	t.Run("unknown grouping column", func(t *testing.T) {
		_, err := NewAggregate(scanOf(t, flightTable(t)), []string{"no_such"}, []AggregateSpec{
			{Op: Count},
		})
		if !qerr.HasCode(err, qerr.PlanError) {
			t.Errorf("expected PlanError, got %v", err)
		}
	})

	t.Run("unknown aggregate column", func(t *testing.T) {
		_, err := NewAggregate(scanOf(t, flightTable(t)), nil, []AggregateSpec{
			{Op: Sum, Column: "no_such"},
		})
		if !qerr.HasCode(err, qerr.PlanError) {
			t.Errorf("expected PlanError, got %v", err)
		}
	})

	t.Run("sum over string column", func(t *testing.T) {
		_, err := NewAggregate(scanOf(t, flightTable(t)), nil, []AggregateSpec{
			{Op: Sum, Column: "aircraft"},
		})
		if !qerr.HasCode(err, qerr.PlanError) {
			t.Errorf("expected PlanError, got %v", err)
		}
	})

	t.Run("star target outside count", func(t *testing.T) {
		_, err := NewAggregate(scanOf(t, flightTable(t)), nil, []AggregateSpec{
			{Op: Sum},
		})
		if !qerr.HasCode(err, qerr.PlanError) {
			t.Errorf("expected PlanError, got %v", err)
		}
	})

	t.Run("no grouping and no aggregates", func(t *testing.T) {
		_, err := NewAggregate(scanOf(t, flightTable(t)), nil, nil)
		if !qerr.HasCode(err, qerr.PlanError) {
			t.Errorf("expected PlanError, got %v", err)
		}
	})
}
