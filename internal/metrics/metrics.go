// Package metrics exposes Prometheus collectors for draft assembly stages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	drafts      *prometheus.CounterVec
	enrichments *prometheus.CounterVec
	images      *prometheus.CounterVec
	outbound    *prometheus.HistogramVec
}

// MustNew registers the collectors with reg and panics on duplicate
// registration, mirroring promauto.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		drafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripdraft",
			Subsystem: "drafting",
			Name:      "drafts_total",
			Help:      "Itinerary drafts produced, by outcome (generated or fallback).",
		}, []string{"outcome"}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripdraft",
			Subsystem: "places",
			Name:      "block_enrichments_total",
			Help:      "Activity block enrichment attempts, by result.",
		}, []string{"result"}),
		images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripdraft",
			Subsystem: "images",
			Name:      "strategy_attempts_total",
			Help:      "Destination image strategy attempts, by strategy and result.",
		}, []string{"strategy", "result"}),
		outbound: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripdraft",
			Subsystem: "outbound",
			Name:      "call_duration_seconds",
			Help:      "Latency of outbound capability calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"capability", "status"}),
	}
	reg.MustRegister(m.drafts, m.enrichments, m.images, m.outbound)
	return m
}

func (m *Metrics) DraftOutcome(outcome string) {
	if m == nil {
		return
	}
	m.drafts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BlockEnrichment(result string) {
	if m == nil {
		return
	}
	m.enrichments.WithLabelValues(result).Inc()
}

func (m *Metrics) ImageStrategy(strategy, result string) {
	if m == nil {
		return
	}
	m.images.WithLabelValues(strategy, result).Inc()
}

// ObserveOutbound records the latency of a call that started at start.
func (m *Metrics) ObserveOutbound(capability string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.outbound.WithLabelValues(capability, status).Observe(time.Since(start).Seconds())
}
