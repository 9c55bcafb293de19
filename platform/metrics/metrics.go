// Package metrics exposes Prometheus collectors for the lead capture pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for lead submissions.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	submitLatency    *prometheus.HistogramVec
	apiUp            prometheus.Gauge
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadcapture",
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Total form submissions by source and outcome",
		}, []string{"source", "outcome"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadcapture",
			Subsystem: "forms",
			Name:      "submit_latency_seconds",
			Help:      "Latency of lead API submissions",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 12},
		}, []string{"source"}),
		apiUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "leadcapture",
			Subsystem: "api",
			Name:      "up",
			Help:      "1 if the last lead API health probe succeeded",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submitLatency, m.apiUp)
	return m
}

// ObserveSubmission counts a finished submission. outcome is "success" or an
// error kind label.
func (m *LeadMetrics) ObserveSubmission(source, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(source, outcome).Inc()
}

func (m *LeadMetrics) ObserveLatency(source string, seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.WithLabelValues(source).Observe(seconds)
}

func (m *LeadMetrics) SetAPIUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.apiUp.Set(1)
		return
	}
	m.apiUp.Set(0)
}
