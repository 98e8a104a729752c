// Package metrics exposes Prometheus collectors for the refresh scheduler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the scheduler collectors.
type Metrics struct {
	TicksTotal     prometheus.Counter
	RefreshedTotal prometheus.Counter
	FailuresTotal  *prometheus.CounterVec
	TickDuration   prometheus.Histogram
	CatalogSize    prometheus.Gauge
	CursorPosition prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg
// uses a fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyseeker_scheduler_ticks_total",
			Help: "Total number of scheduler ticks.",
		}),
		RefreshedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyseeker_positions_refreshed_total",
			Help: "Total number of positions published.",
		}),
		FailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyseeker_position_failures_total",
				Help: "Total number of bodies whose position could not be computed.",
			},
			[]string{"kind"},
		),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skyseeker_tick_duration_seconds",
			Help:    "Time spent computing one scheduler batch.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skyseeker_catalog_bodies",
			Help: "Number of bodies in the catalog at the last tick.",
		}),
		CursorPosition: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skyseeker_scheduler_cursor",
			Help: "Batch cursor index after the last tick.",
		}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.TicksTotal,
		m.RefreshedTotal,
		m.FailuresTotal,
		m.TickDuration,
		m.CatalogSize,
		m.CursorPosition,
	)
	return m
}

// ObserveTick records one completed tick.
func (m *Metrics) ObserveTick(refreshed, total, cursor int, d time.Duration) {
	if m == nil {
		return
	}
	m.TicksTotal.Inc()
	m.RefreshedTotal.Add(float64(refreshed))
	m.CatalogSize.Set(float64(total))
	m.CursorPosition.Set(float64(cursor))
	m.TickDuration.Observe(d.Seconds())
}

// ObserveFailure counts a failed body of the given kind.
func (m *Metrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(kind).Inc()
}

// Handler returns the Prometheus metrics HTTP handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
