package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analyses       *prometheus.CounterVec
	fetches        *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	suggestedPrice *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescout_analyses_total",
				Help: "Total number of completed price analyses",
			},
			[]string{"outcome", "strategy"},
		),
		fetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescout_fetches_total",
				Help: "Total number of comparable-listing fetches",
			},
			[]string{"source", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescout_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		suggestedPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pricescout_suggested_price",
				Help: "Last suggested price per winning strategy",
			},
			[]string{"strategy"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricescout_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis records a completed analysis by outcome and strategy kind.
func (r *Recorder) RecordAnalysis(outcome, strategy string) {
	r.analyses.WithLabelValues(outcome, strategy).Inc()
}

// RecordFetch records one fetch attempt against a listing source.
func (r *Recorder) RecordFetch(source, outcome string) {
	r.fetches.WithLabelValues(source, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSuggestedPrice records the last suggested price for a strategy.
func (r *Recorder) RecordSuggestedPrice(strategy string, price float64) {
	r.suggestedPrice.WithLabelValues(strategy).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
