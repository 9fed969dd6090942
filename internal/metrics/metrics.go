// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequests counts handled requests by route, method and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ledgerly",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by route, method and status.",
}, []string{"route", "method", "status"})

// HTTPDuration tracks request latency by route and method.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ledgerly",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method"})

// DashboardComputeDuration tracks how long loading a snapshot and deriving
// the dashboard takes.
var DashboardComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "ledgerly",
	Subsystem: "dashboard",
	Name:      "compute_duration_seconds",
	Help:      "Time spent loading ledgers and computing the dashboard.",
	Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
})

// SavingsRejected counts savings transactions refused by a balance check,
// labelled with the error code.
var SavingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ledgerly",
	Subsystem: "savings",
	Name:      "rejected_total",
	Help:      "Savings transactions rejected because the balance was insufficient.",
}, []string{"code"})

// FundBalanceMismatches counts funds whose stored balance disagreed with
// their ledger when a dashboard was computed.
var FundBalanceMismatches = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ledgerly",
	Subsystem: "savings",
	Name:      "fund_balance_mismatch_total",
	Help:      "Funds whose stored balance did not match the sum of their transactions.",
})
