package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLeadMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveSubmission("home", "success")
	m.ObserveSubmission("home", "success")
	m.ObserveSubmission("plot", "timeout")
	m.ObserveLatency("home", 0.3)
	m.SetAPIUp(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("home", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("plot", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiUp))
	assert.Equal(t, 1, testutil.CollectAndCount(m.submitLatency))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("home", "success")
	m.ObserveLatency("home", 1)
	m.SetAPIUp(false)
}
