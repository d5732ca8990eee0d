// Package plan defines the declarative query description that the planner
// turns into an operator pipeline. A Plan names tables and columns; it
// carries no iterator state and can be executed any number of times.
package plan

import (
	"relcore/pkg/execution"
	"relcore/pkg/expr"
	"relcore/pkg/qerr"
)

// Join describes one inner equi-join against an additional table.
type Join struct {
	Table      string
	Conditions []execution.JoinCondition
}

// Plan is a complete query description. Stages are applied in a fixed
// order: scan, joins, filter, aggregation, having, order by, limit and
// offset, projection. Every stage except the table scan is optional.
type Plan struct {
	Table      string
	Joins      []Join
	Filter     expr.Predicate
	GroupBy    []string
	Aggregates []execution.AggregateSpec
	Having     expr.Predicate
	OrderBy    []execution.SortKey
	Limit      *int64 // nil means no limit
	Offset     int64
	Projection []execution.ProjectionItem
}

// LimitOf is a convenience for building plan literals with a limit.
func LimitOf(n int64) *int64 {
	return &n
}

// Validate checks the plan's internal consistency. Column existence is
// checked later against actual schemas when the pipeline is built.
func (p *Plan) Validate() error {
	if p.Table == "" {
		return qerr.New(qerr.PlanError, "plan requires a table to scan")
	}
	for _, j := range p.Joins {
		if j.Table == "" {
			return qerr.New(qerr.PlanError, "join requires a table name")
		}
		if len(j.Conditions) == 0 {
			return qerr.Newf(qerr.PlanError, "join with %s requires at least one condition", j.Table)
		}
	}
	if p.Having != nil && len(p.Aggregates) == 0 && len(p.GroupBy) == 0 {
		return qerr.New(qerr.PlanError, "having requires aggregation")
	}
	return nil
}
