package planner

import (
	"fmt"
	"strings"

	"relcore/pkg/tuple"
)

// Result holds a fully materialized query outcome: the output schema and
// every result row in order.
type Result struct {
	TupleDesc *tuple.TupleDescription
	Rows      []*tuple.Tuple
}

func (r *Result) String() string {
	return fmt.Sprintf("Query returned %d row(s)", len(r.Rows))
}

// ColumnNames returns the output column names in schema order.
func (r *Result) ColumnNames() []string {
	names := make([]string, r.TupleDesc.NumFields())
	for i := range names {
		name, err := r.TupleDesc.GetFieldName(i)
		if err == nil {
			names[i] = name
		}
	}
	return names
}

// Render formats the rows as an aligned text table with NULL for missing
// values. Intended for CLI output and debugging.
func (r *Result) Render() string {
	names := r.ColumnNames()
	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}

	cells := make([][]string, len(r.Rows))
	for ri, row := range r.Rows {
		cells[ri] = make([]string, len(names))
		for ci := range names {
			field, err := row.GetField(ci)
			text := "NULL"
			if err == nil && field != nil {
				text = field.String()
			}
			cells[ri][ci] = text
			if len(text) > widths[ci] {
				widths[ci] = len(text)
			}
		}
	}

	var b strings.Builder
	writeRow := func(vals []string) {
		for i, v := range vals {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], v)
		}
		b.WriteByte('\n')
	}

	writeRow(names)
	seps := make([]string, len(names))
	for i := range seps {
		seps[i] = strings.Repeat("-", widths[i])
	}
	writeRow(seps)
	for _, row := range cells {
		writeRow(row)
	}
	return b.String()
}
