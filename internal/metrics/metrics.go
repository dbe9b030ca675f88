// Package metrics exposes Prometheus counters for the RPC layer and the ledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/settleup/internal/ledger"
)

const namespace = "settleup"

// Metrics holds every collector the server reports. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	BalanceComputations prometheus.Counter
	PhantomEntries      prometheus.Counter
	SettlementsRecorded prometheus.Counter
	ExpensesSettled     prometheus.Counter
}

// New creates a Metrics with its own registry, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		BalanceComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_computations_total",
			Help:      "Group balance computations performed.",
		}),
		PhantomEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phantom_entries_total",
			Help:      "Balance entries produced for ids missing from the group roster.",
		}),
		SettlementsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_recorded_total",
			Help:      "Settle-up payments recorded.",
		}),
		ExpensesSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_settled_total",
			Help:      "Expenses moved from pending to settled.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.BalanceComputations,
		m.PhantomEntries,
		m.SettlementsRecorded,
		m.ExpensesSettled,
	)

	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}

// ObserveBalances records one balance computation and the phantom entries it produced.
func (m *Metrics) ObserveBalances(balances []ledger.MemberBalance) {
	if m == nil {
		return
	}
	m.BalanceComputations.Inc()
	for _, b := range balances {
		if b.Phantom {
			m.PhantomEntries.Inc()
		}
	}
}

// SettlementRecorded counts one recorded settle-up payment.
func (m *Metrics) SettlementRecorded() {
	if m == nil {
		return
	}
	m.SettlementsRecorded.Inc()
}

// ExpenseSettled counts one expense status change to settled.
func (m *Metrics) ExpenseSettled() {
	if m == nil {
		return
	}
	m.ExpensesSettled.Inc()
}
