// Package metrics exposes Prometheus collectors for the tabsplit server.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tabsplit"

// Metrics holds the server's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests      *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	expensesCreated  *prometheus.CounterVec
	unassignedCents  prometheus.Counter
	publishFailures  prometheus.Counter
	publishSucceeded prometheus.Counter
}

// New creates a registry with the process and Go runtime collectors plus the
// tabsplit collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		expensesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_created_total",
			Help:      "Expenses recorded, by split mode.",
		}, []string{"mode"}),
		unassignedCents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claim_unassigned_cents_total",
			Help:      "Item remainder cents not assigned to a claimant.",
		}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_publish_failures_total",
			Help:      "Balance snapshots that could not be published.",
		}),
		publishSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_publish_total",
			Help:      "Balance snapshots published.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.expensesCreated,
		m.unassignedCents,
		m.publishFailures,
		m.publishSucceeded,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer returns the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveRPC records one finished call. code is "ok" or a Connect error code.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ExpenseCreated counts a persisted expense.
func (m *Metrics) ExpenseCreated(mode string) {
	if m == nil {
		return
	}
	m.expensesCreated.WithLabelValues(mode).Inc()
}

// UnassignedCents adds item remainder cents that no claimant absorbed.
func (m *Metrics) UnassignedCents(cents int64) {
	if m == nil || cents <= 0 {
		return
	}
	m.unassignedCents.Add(float64(cents))
}

// BalancePublished counts a balance snapshot publish attempt.
func (m *Metrics) BalancePublished(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.publishFailures.Inc()
		return
	}
	m.publishSucceeded.Inc()
}
