// Package metrics exposes Prometheus counters for the resolution engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is nil-safe: every method is a no-op on a nil receiver so
// components can be built without instrumentation in tests.
type Metrics struct {
	resolutions    *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec
	requests       *prometheus.CounterVec
}

// New registers the engine's collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flight_emissions",
			Name:      "resolutions_total",
			Help:      "Resolutions by resolver and the fallback step that produced the value.",
		}, []string{"resolver", "step"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flight_emissions",
			Name:      "source_failures_total",
			Help:      "External lookups that failed or returned unusable text.",
		}, []string{"source"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flight_emissions",
			Name:      "dispatched_requests_total",
			Help:      "Requests handled by the dispatcher by op and outcome.",
		}, []string{"op", "outcome"}),
	}

	reg.MustRegister(m.resolutions, m.sourceFailures, m.requests)
	return m
}

func (m *Metrics) Resolved(resolver, step string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(resolver, step).Inc()
}

func (m *Metrics) SourceFailed(source string) {
	if m == nil {
		return
	}
	m.sourceFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) Dispatched(op, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
}

// RegisterCacheEntries exposes the resolution cache size, read from size on
// every scrape.
func RegisterCacheEntries(reg prometheus.Registerer, size func() (distances, aircraft int)) {
	gauge := func(kind string, pick func() float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "flight_emissions",
			Name:        "cache_entries",
			Help:        "Entries held by the process-wide resolution cache.",
			ConstLabels: prometheus.Labels{"kind": kind},
		}, pick)
	}

	reg.MustRegister(
		gauge("distance", func() float64 { n, _ := size(); return float64(n) }),
		gauge("aircraft", func() float64 { _, n := size(); return float64(n) }),
	)
}
