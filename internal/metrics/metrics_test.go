package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveMutation("append")
	m.ObserveMutation("append")
	m.ObserveMutation("delete")
	m.ObservePersistFailure()
	m.SetTabCounts(3, 1)

	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("append")); got != 2 {
		t.Errorf("append mutations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.PersistFailures); got != 1 {
		t.Errorf("persist failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Tabs.WithLabelValues("active")); got != 3 {
		t.Errorf("active tabs = %v, want 3", got)
	}

	if n, err := testutil.GatherAndCount(reg); err != nil || n == 0 {
		t.Errorf("GatherAndCount = %d, %v", n, err)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	// Must not panic
	m.ObserveMutation("append")
	m.ObservePersistFailure()
	m.ObserveLoadFailure()
	m.SetTabCounts(1, 1)
}
