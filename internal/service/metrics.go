package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spending_queries_total",
			Help: "Total number of spending queries served.",
		},
		[]string{"query", "outcome"},
	)
	queryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spending_query_duration_seconds",
			Help:    "Spending query latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)
	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spending_fallbacks_total",
			Help: "Total number of queries answered with a no-data fallback.",
		},
		[]string{"query"},
	)
)

func observeQuery(query string, err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	queriesTotal.WithLabelValues(query, outcome).Inc()
	queryDurationSeconds.WithLabelValues(query).Observe(dur.Seconds())
}
