// Package metrics defines the Prometheus collectors for the tab store.
//
// Nothing here serves HTTP; callers pick the registry and decide whether
// and how to expose it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "tabsplit"

// Metrics holds the collectors updated by the tab store.
type Metrics struct {
	Mutations       *prometheus.CounterVec
	PersistFailures prometheus.Counter
	LoadFailures    prometheus.Counter
	Tabs            *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is useful in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Tab store mutations that changed state, by operation.",
		}, []string{"op"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Failed attempts to write the tab list to the blob store.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "load_failures_total",
			Help:      "Loads that fell back to an empty tab list.",
		}),
		Tabs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tabs",
			Help:      "Tabs currently held, by state (active or settled).",
		}, []string{"state"}),
	}

	if reg != nil {
		reg.MustRegister(m.Mutations, m.PersistFailures, m.LoadFailures, m.Tabs)
	}
	return m
}

// ObserveMutation counts one state-changing store operation.
func (m *Metrics) ObserveMutation(op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op).Inc()
}

// ObservePersistFailure counts one failed write.
func (m *Metrics) ObservePersistFailure() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

// ObserveLoadFailure counts one load that fell back to empty.
func (m *Metrics) ObserveLoadFailure() {
	if m == nil {
		return
	}
	m.LoadFailures.Inc()
}

// SetTabCounts updates the per-state gauge.
func (m *Metrics) SetTabCounts(active, settled int) {
	if m == nil {
		return
	}
	m.Tabs.WithLabelValues("active").Set(float64(active))
	m.Tabs.WithLabelValues("settled").Set(float64(settled))
}
