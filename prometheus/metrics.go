// Package prometheus records pipeline counters with the Prometheus client.
package prometheus

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "reviewscout"

// Arbitration outcomes.
const (
	OutcomeAnswered = "answered"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Metrics holds the pipeline's collectors and the registry they live in.
type Metrics struct {
	ReviewsExtracted    *prometheus.CounterVec
	FallbackPages       *prometheus.CounterVec
	Verdicts            *prometheus.CounterVec
	Arbitrations        *prometheus.CounterVec
	ArbitrationDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them with a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		ReviewsExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "reviews_extracted_total",
				Help:      "Reviews extracted, by platform and strategy.",
			},
			[]string{"platform", "strategy"},
		),
		FallbackPages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "fallback_pages_total",
				Help:      "Pages where every strategy failed and page text was used.",
			},
			[]string{"platform"},
		),
		Verdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "verdicts_total",
				Help:      "Relevance verdicts, by platform, deciding stage and outcome.",
			},
			[]string{"platform", "stage", "relevant"},
		),
		Arbitrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "arbitrations_total",
				Help:      "Arbitration calls, by outcome.",
			},
			[]string{"outcome"},
		),
		ArbitrationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "arbitration_duration_seconds",
				Help:      "Duration of arbitration calls in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
		registry: reg,
	}
}

// WriteToTextfile writes the current metric values to path in the text
// exposition format, for pickup by a node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// label lowercases and replaces spaces so platform names read well as
// label values.
func label(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
