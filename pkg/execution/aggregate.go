package execution

import (
	"fmt"
	"strings"

	"relcore/pkg/iterator"
	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// AggregateOp identifies an aggregate function.
type AggregateOp int

const (
	Count AggregateOp = iota
	Sum
	Avg
	Min
	Max
)

func (op AggregateOp) String() string {
	switch op {
	case Count:
		return "COUNT"
	case Sum:
		return "SUM"
	case Avg:
		return "AVG"
	case Min:
		return "MIN"
	case Max:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

// AggregateSpec describes one aggregate output: the function, the target
// column (empty for COUNT(*)), and an optional output alias.
type AggregateSpec struct {
	Op     AggregateOp
	Column string // empty means *
	Alias  string
}

// OutputName returns the column name this aggregate produces: the alias if
// set, otherwise a derived name like "count(*)" or "avg(mileage)".
func (s AggregateSpec) OutputName() string {
	if s.Alias != "" {
		return s.Alias
	}
	target := s.Column
	if target == "" {
		target = "*"
	}
	return fmt.Sprintf("%s(%s)", strings.ToLower(s.Op.String()), target)
}

// Aggregate partitions its input rows by the grouping columns and computes
// one row per group carrying the group key values followed by the
// aggregates. An empty grouping list means a single implicit group over all
// rows — which for empty input still produces one row (COUNT yields 0, the
// other functions yield null).
//
// Null handling follows SQL semantics: COUNT(*) counts every row, COUNT(col)
// counts only non-null values, SUM/AVG/MIN/MAX ignore nulls and yield null
// for an all-null group, and a null grouping key never equals another null,
// so each such row forms its own singleton group. AVG is computed in
// floating point regardless of input type.
//
// Groups are emitted in first-seen input order. Callers must not rely on
// that order; it exists so a downstream stable sort has a deterministic
// tie-break.
type Aggregate struct {
	child        iterator.RowIterator
	groupBy      []string
	specs        []AggregateSpec
	groupIndexes []int
	specIndexes  []int // -1 for COUNT(*)
	outTd        *tuple.TupleDescription

	results      *iterator.SliceIterator[*tuple.Tuple]
	materialized bool
	base         *iterator.BaseIterator
}

// NewAggregate creates a grouping/aggregation operator over the child.
// Unknown grouping or aggregate columns fail with PlanError; so does an
// aggregation with no aggregate specs and no grouping columns.
func NewAggregate(child iterator.RowIterator, groupBy []string, specs []AggregateSpec) (*Aggregate, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if len(specs) == 0 && len(groupBy) == 0 {
		return nil, qerr.New(qerr.PlanError, "aggregation requires grouping columns or aggregate functions")
	}

	childTd := child.GetTupleDesc()

	groupIndexes := make([]int, len(groupBy))
	for i, col := range groupBy {
		idx, err := childTd.FindFieldIndex(col)
		if err != nil {
			return nil, qerr.Newf(qerr.PlanError, "grouping references unknown column %s", col)
		}
		groupIndexes[i] = idx
	}

	specIndexes := make([]int, len(specs))
	for i, spec := range specs {
		if spec.Column == "" {
			if spec.Op != Count {
				return nil, qerr.Newf(qerr.PlanError, "%s requires a target column", spec.Op)
			}
			specIndexes[i] = -1
			continue
		}

		idx, err := childTd.FindFieldIndex(spec.Column)
		if err != nil {
			return nil, qerr.Newf(qerr.PlanError, "aggregate %s references unknown column %s",
				spec.Op, spec.Column)
		}
		colType, _ := childTd.TypeAtIndex(idx)
		if spec.Op != Count && spec.Op != Min && spec.Op != Max && !colType.Numeric() {
			return nil, qerr.Newf(qerr.PlanError, "%s requires a numeric column, %s is %v",
				spec.Op, spec.Column, colType)
		}
		specIndexes[i] = idx
	}

	outTd, err := aggregateOutputDesc(childTd, groupBy, groupIndexes, specs, specIndexes)
	if err != nil {
		return nil, err
	}

	a := &Aggregate{
		child:        child,
		groupBy:      groupBy,
		specs:        specs,
		groupIndexes: groupIndexes,
		specIndexes:  specIndexes,
		outTd:        outTd,
	}
	a.base = iterator.NewBaseIterator(a.readNext)
	return a, nil
}

// aggregateOutputDesc builds the output schema: grouping columns in their
// original types, then one column per aggregate. COUNT produces an integer,
// AVG a float, and SUM/MIN/MAX the input column's type.
func aggregateOutputDesc(childTd *tuple.TupleDescription, groupBy []string, groupIndexes []int,
	specs []AggregateSpec, specIndexes []int) (*tuple.TupleDescription, error) {

	outTypes := make([]types.Type, 0, len(groupBy)+len(specs))
	outNames := make([]string, 0, len(groupBy)+len(specs))

	for i, col := range groupBy {
		colType, _ := childTd.TypeAtIndex(groupIndexes[i])
		outTypes = append(outTypes, colType)
		outNames = append(outNames, col)
	}

	for i, spec := range specs {
		var outType types.Type
		switch spec.Op {
		case Count:
			outType = types.IntType
		case Avg:
			outType = types.FloatType
		default:
			outType, _ = childTd.TypeAtIndex(specIndexes[i])
		}
		outTypes = append(outTypes, outType)
		outNames = append(outNames, spec.OutputName())
	}

	return tuple.NewTupleDesc(outTypes, outNames)
}

// Open opens the child, consumes it entirely into per-group accumulators,
// and prepares the result rows.
func (a *Aggregate) Open() error {
	if err := a.child.Open(); err != nil {
		return fmt.Errorf("failed to open child operator: %w", err)
	}

	if err := a.materialize(); err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}

	a.base.MarkOpened()
	return nil
}

// materialize runs the build phase: one accumulator per distinct group key,
// updated row by row in input order.
func (a *Aggregate) materialize() error {
	if a.materialized {
		return nil
	}

	groups := make(map[string]*groupAccumulator)
	var groupOrder []string
	nullSeq := 0

	err := iterator.Iterate(a.child, func(t *tuple.Tuple) (bool, error) {
		key, err := a.groupKey(t, &nullSeq)
		if err != nil {
			return false, err
		}

		acc, exists := groups[key]
		if !exists {
			acc = newGroupAccumulator(t, a.specs, a.specIndexes)
			groups[key] = acc
			groupOrder = append(groupOrder, key)
		}

		return true, acc.merge(t)
	})
	if err != nil {
		return err
	}

	// A grand aggregate over empty input still produces one row.
	if len(groupOrder) == 0 && len(a.groupBy) == 0 {
		key := ""
		groups[key] = newGroupAccumulator(nil, a.specs, a.specIndexes)
		groupOrder = append(groupOrder, key)
	}

	results := make([]*tuple.Tuple, 0, len(groupOrder))
	for _, key := range groupOrder {
		row, err := a.finalizeGroup(groups[key])
		if err != nil {
			return err
		}
		results = append(results, row)
	}

	a.results = iterator.NewSliceIterator(results)
	a.materialized = true
	return nil
}

// groupKey derives the hash key for a row's grouping columns. A null in any
// grouping column makes the key unique to this row: null never equals null,
// so the row lands in its own singleton group.
func (a *Aggregate) groupKey(t *tuple.Tuple, nullSeq *int) (string, error) {
	if len(a.groupIndexes) == 0 {
		return "", nil
	}

	parts := make([]string, len(a.groupIndexes))
	for i, idx := range a.groupIndexes {
		field, err := t.GetField(idx)
		if err != nil {
			return "", err
		}
		if field == nil {
			*nullSeq++
			return fmt.Sprintf("\x00null-group-%d", *nullSeq), nil
		}
		parts[i] = field.KeyString()
	}
	return strings.Join(parts, "\x1f"), nil
}

// finalizeGroup builds the output row for one group: grouping column values
// from the group's first row, then each aggregate's final value.
func (a *Aggregate) finalizeGroup(acc *groupAccumulator) (*tuple.Tuple, error) {
	out := tuple.NewTuple(a.outTd)

	for i, idx := range a.groupIndexes {
		field, err := acc.repr.GetField(idx)
		if err != nil {
			return nil, err
		}
		if err := out.SetField(i, field); err != nil {
			return nil, err
		}
	}

	for i, state := range acc.states {
		if err := out.SetField(len(a.groupIndexes)+i, state.finalValue()); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// readNext returns the next aggregated row.
func (a *Aggregate) readNext() (*tuple.Tuple, error) {
	if a.results.Remaining() == 0 {
		return nil, nil
	}
	return a.results.Next()
}

// Rewind resets to the first aggregated row without recomputing.
func (a *Aggregate) Rewind() error {
	if !a.materialized {
		return fmt.Errorf("aggregate not opened")
	}
	if err := a.results.Rewind(); err != nil {
		return err
	}
	return a.base.Rewind()
}

// Close releases the accumulated results and closes the child.
func (a *Aggregate) Close() error {
	a.results = nil
	a.materialized = false

	if err := a.child.Close(); err != nil {
		return err
	}
	return a.base.Close()
}

// HasNext checks if there are more aggregated rows available.
func (a *Aggregate) HasNext() (bool, error) {
	return a.base.HasNext()
}

// Next returns the next aggregated row.
func (a *Aggregate) Next() (*tuple.Tuple, error) {
	return a.base.Next()
}

// GetTupleDesc returns the aggregation output schema.
func (a *Aggregate) GetTupleDesc() *tuple.TupleDescription {
	return a.outTd
}

// groupAccumulator is the running state for one group: the group's first
// row (for the grouping column values) plus one aggState per aggregate.
type groupAccumulator struct {
	repr   *tuple.Tuple
	states []*aggState
}

func newGroupAccumulator(first *tuple.Tuple, specs []AggregateSpec, specIndexes []int) *groupAccumulator {
	states := make([]*aggState, len(specs))
	for i, spec := range specs {
		states[i] = &aggState{
			op:     spec.Op,
			colIdx: specIndexes[i],
		}
	}
	return &groupAccumulator{
		repr:   first,
		states: states,
	}
}

func (g *groupAccumulator) merge(t *tuple.Tuple) error {
	for _, state := range g.states {
		if err := state.merge(t); err != nil {
			return err
		}
	}
	return nil
}

// aggState is the incremental state of a single aggregate within one group.
type aggState struct {
	op     AggregateOp
	colIdx int // -1 for COUNT(*)

	rows    int64 // all rows seen, for COUNT(*)
	nonNull int64 // non-null target values seen
	intSum  int64
	fltSum  float64
	sawFlt  bool        // a float value contributed to the sum
	minVal  types.Field // running minimum, nil until a non-null value arrives
	maxVal  types.Field // running maximum
}

func (s *aggState) merge(t *tuple.Tuple) error {
	s.rows++

	if s.colIdx < 0 {
		return nil
	}

	field, err := t.GetField(s.colIdx)
	if err != nil {
		return err
	}
	if field == nil {
		return nil // aggregates ignore null inputs
	}
	s.nonNull++

	switch s.op {
	case Sum, Avg:
		switch v := field.(type) {
		case *types.IntField:
			s.intSum += v.Value
		case *types.FloatField:
			s.fltSum += v.Value
			s.sawFlt = true
		default:
			return qerr.Newf(qerr.TypeError, "%s over non-numeric value %v", s.op, field.Type())
		}

	case Min:
		if s.minVal == nil {
			s.minVal = field
			return nil
		}
		cmp, err := types.Order(field, s.minVal)
		if err != nil {
			return err
		}
		if cmp < 0 {
			s.minVal = field
		}

	case Max:
		if s.maxVal == nil {
			s.maxVal = field
			return nil
		}
		cmp, err := types.Order(field, s.maxVal)
		if err != nil {
			return err
		}
		if cmp > 0 {
			s.maxVal = field
		}
	}

	return nil
}

// finalValue computes the aggregate's result once input is exhausted.
// A group with zero non-null contributors yields null for SUM/AVG/MIN/MAX —
// "no data" is distinct from invalid arithmetic, so AVG over nothing is
// null rather than a division error.
func (s *aggState) finalValue() types.Field {
	switch s.op {
	case Count:
		if s.colIdx < 0 {
			return types.NewIntField(s.rows)
		}
		return types.NewIntField(s.nonNull)

	case Sum:
		if s.nonNull == 0 {
			return nil
		}
		if s.sawFlt {
			return types.NewFloatField(s.fltSum + float64(s.intSum))
		}
		return types.NewIntField(s.intSum)

	case Avg:
		if s.nonNull == 0 {
			return nil
		}
		total := s.fltSum + float64(s.intSum)
		return types.NewFloatField(total / float64(s.nonNull))

	case Min:
		return s.minVal

	case Max:
		return s.maxVal

	default:
		return nil
	}
}
