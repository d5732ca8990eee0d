// Package planner builds operator pipelines from declarative plans and
// runs them against a table store.
package planner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"relcore/pkg/execution"
	"relcore/pkg/iterator"
	"relcore/pkg/logging"
	"relcore/pkg/metrics"
	"relcore/pkg/plan"
	"relcore/pkg/qerr"
	"relcore/pkg/tables"
)

// Executor turns plans into operator pipelines and materializes their
// output. It holds no per-query state, so one Executor serves any number
// of sequential queries.
type Executor struct {
	store *tables.TableStore
}

// NewExecutor creates an executor over the given table store.
func NewExecutor(store *tables.TableStore) (*Executor, error) {
	if store == nil {
		return nil, fmt.Errorf("table store cannot be nil")
	}
	return &Executor{store: store}, nil
}

// Execute runs the plan to completion and returns all result rows. Each
// execution gets a query ID for log correlation.
func (e *Executor) Execute(p *plan.Plan) (*Result, error) {
	queryID := uuid.NewString()
	log := logging.WithQuery(queryID)
	start := time.Now()

	result, err := e.run(p, log)

	elapsed := time.Since(start)
	status := "ok"
	rows := 0
	if err != nil {
		status = "error"
		log.Error("query failed", "error", err, "duration", elapsed)
	} else {
		rows = len(result.Rows)
		log.Info("query finished", "rows", rows, "duration", elapsed)
	}
	metrics.ObserveQuery(p.Table, status, elapsed.Seconds(), rows)

	return result, err
}

func (e *Executor) run(p *plan.Plan, log *slog.Logger) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, qerr.Wrap(err, "ValidatePlan", "Executor")
	}

	root, err := e.build(p)
	if err != nil {
		return nil, qerr.Wrap(err, "BuildPipeline", "Executor")
	}

	if err := root.Open(); err != nil {
		return nil, qerr.Wrap(err, "Execute", "Executor")
	}
	defer root.Close()

	rows, err := iterator.Collect(root)
	if err != nil {
		return nil, qerr.Wrap(err, "Execute", "Executor")
	}
	log.Debug("pipeline drained", "table", p.Table, "rows", len(rows))

	return &Result{
		TupleDesc: root.GetTupleDesc(),
		Rows:      rows,
	}, nil
}

// build assembles the operator pipeline bottom-up in plan order: scan,
// joins, filter, aggregation, having, order by, limit, projection.
func (e *Executor) build(p *plan.Plan) (iterator.RowIterator, error) {
	current, err := e.scan(p.Table)
	if err != nil {
		return nil, err
	}

	for _, j := range p.Joins {
		right, err := e.scan(j.Table)
		if err != nil {
			return nil, err
		}
		current, err = execution.NewHashJoin(current, right, j.Conditions, j.Table)
		if err != nil {
			return nil, err
		}
	}

	if p.Filter != nil {
		current, err = execution.NewFilter(p.Filter, current)
		if err != nil {
			return nil, err
		}
	}

	if len(p.GroupBy) > 0 || len(p.Aggregates) > 0 {
		current, err = execution.NewAggregate(current, p.GroupBy, p.Aggregates)
		if err != nil {
			return nil, err
		}
	}

	if p.Having != nil {
		current, err = execution.NewFilter(p.Having, current)
		if err != nil {
			return nil, err
		}
	}

	if len(p.OrderBy) > 0 {
		current, err = execution.NewSort(current, p.OrderBy)
		if err != nil {
			return nil, err
		}
	}

	if p.Limit != nil || p.Offset != 0 {
		limit := execution.NoLimit
		if p.Limit != nil {
			limit = *p.Limit
		}
		current, err = execution.NewLimit(current, limit, p.Offset)
		if err != nil {
			return nil, err
		}
	}

	if len(p.Projection) > 0 {
		current, err = execution.NewProject(current, p.Projection)
		if err != nil {
			return nil, err
		}
	}

	return current, nil
}

func (e *Executor) scan(tableName string) (iterator.RowIterator, error) {
	tbl, err := e.store.GetTable(tableName)
	if err != nil {
		return nil, err
	}
	return execution.NewTableScan(tbl)
}
