package execution

import (
	"fmt"

	"relcore/pkg/iterator"
	"relcore/pkg/qerr"
	"relcore/pkg/tuple"
	"relcore/pkg/types"
)

// ProjectionItem selects one input column for the output, optionally
// renaming it.
type ProjectionItem struct {
	Column string
	Alias  string
}

// Project narrows and reorders the input schema to the selected columns.
// Columns are resolved against the child schema at construction time, so a
// misspelled name fails before any row flows.
type Project struct {
	*iterator.UnaryOperator
	indexes []int
	outTd   *tuple.TupleDescription
}

// NewProject creates a projection over the child. Unknown columns fail with
// PlanError.
func NewProject(child iterator.RowIterator, items []ProjectionItem) (*Project, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if len(items) == 0 {
		return nil, qerr.New(qerr.PlanError, "projection requires at least one column")
	}

	childTd := child.GetTupleDesc()

	indexes := make([]int, len(items))
	outTypes := make([]types.Type, len(items))
	outNames := make([]string, len(items))
	for i, item := range items {
		idx, err := childTd.FindFieldIndex(item.Column)
		if err != nil {
			return nil, qerr.Newf(qerr.PlanError, "projection references unknown column %s", item.Column)
		}
		indexes[i] = idx

		colType, _ := childTd.TypeAtIndex(idx)
		outTypes[i] = colType

		name := item.Alias
		if name == "" {
			name = item.Column
		}
		outNames[i] = name
	}

	outTd, err := tuple.NewTupleDesc(outTypes, outNames)
	if err != nil {
		return nil, err
	}

	p := &Project{
		indexes: indexes,
		outTd:   outTd,
	}
	op, err := iterator.NewUnaryOperator(child, p.readNext)
	if err != nil {
		return nil, err
	}
	p.UnaryOperator = op
	return p, nil
}

// readNext builds the narrowed output row for the next input row.
func (p *Project) readNext() (*tuple.Tuple, error) {
	t, err := p.FetchNext()
	if err != nil || t == nil {
		return t, err
	}

	out := tuple.NewTuple(p.outTd)
	for i, idx := range p.indexes {
		field, err := t.GetField(idx)
		if err != nil {
			return nil, err
		}
		if err := out.SetField(i, field); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetTupleDesc returns the projected schema.
func (p *Project) GetTupleDesc() *tuple.TupleDescription {
	return p.outTd
}
