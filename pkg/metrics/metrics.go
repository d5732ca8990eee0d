package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relcore_queries_total",
			Help: "Total number of executed query plans.",
		},
		[]string{"table", "status"},
	)

	queryDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relcore_query_duration_seconds",
			Help:    "Query execution latency by driving table.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	rowsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relcore_query_rows_returned",
			Help:    "Result row counts per query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal, queryDurationSeconds, rowsReturned)
}

// ObserveQuery records one finished query execution.
func ObserveQuery(table, status string, seconds float64, rows int) {
	queriesTotal.WithLabelValues(table, status).Inc()
	if status == "ok" {
		queryDurationSeconds.WithLabelValues(table).Observe(seconds)
		rowsReturned.WithLabelValues(table).Observe(float64(rows))
	}
}
