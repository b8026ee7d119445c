// Package middleware provides observability decorators for plan scorers
// and the Prometheus metrics collector they report to.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/teamform/internal/ports"
)

const namespace = "teamform"

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It tracks appraisal outcomes, score distributions, operation latency and
// selection state.
type PrometheusMetrics struct {
	appraisals     *prometheus.CounterVec
	appraisalScore prometheus.Histogram
	objectiveScore *prometheus.HistogramVec
	latency        *prometheus.HistogramVec
	rejections     prometheus.Counter
	events         *prometheus.CounterVec
	state          *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// its collectors with reg. A nil reg uses the default Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	scoreBuckets := prometheus.LinearBuckets(0, 0.1, 11)

	return &PrometheusMetrics{
		appraisals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "appraisals_total",
				Help:      "Total number of plan appraisals by outcome.",
			},
			[]string{ports.LabelStatus},
		),
		appraisalScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "appraisal_score",
				Help:      "Distribution of combined plan scores.",
				Buckets:   scoreBuckets,
			},
		),
		objectiveScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "objective_score",
				Help:      "Distribution of individual objective scores.",
				Buckets:   scoreBuckets,
			},
			[]string{ports.LabelObjective},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of appraisal and selection operations.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"operation"},
		),
		rejections: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "selection_rejections_total",
				Help:      "Total number of candidate plans discarded for precondition violations.",
			},
		),
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Counters without a dedicated metric.",
			},
			[]string{"event"},
		),
		state: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state",
				Help:      "Most recent values of selection state such as the best score.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	_ map[string]string,
) {
	pm.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricAppraisals:
		pm.appraisals.WithLabelValues(labelOr(labels, ports.LabelStatus, ports.StatusSuccess)).Add(value)
	case ports.MetricRejections:
		pm.rejections.Add(value)
	default:
		pm.events.WithLabelValues(metric).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, _ map[string]string,
) {
	pm.state.WithLabelValues(metric).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// score observations. Unknown histogram names are dropped.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricAppraisalScore:
		pm.appraisalScore.Observe(value)
	case ports.MetricObjectiveScore:
		pm.objectiveScore.WithLabelValues(labelOr(labels, ports.LabelObjective, "unknown")).Observe(value)
	}
}

func labelOr(labels map[string]string, key, fallback string) string {
	if v := labels[key]; v != "" {
		return v
	}
	return fallback
}
