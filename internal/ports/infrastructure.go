package ports

import (
	"time"
)

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus, OpenTelemetry, or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like appraisals and rejections.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for tracking values like the best score of the last
	// selection run.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like plan and objective
	// scores.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// Metric names shared by the emitters in the application and middleware
// layers and the Prometheus collector that routes them.
const (
	MetricAppraisals     = "appraisals_total"
	MetricAppraisalScore = "appraisal_score"
	MetricObjectiveScore = "objective_score"
	MetricRejections     = "selection_rejections_total"
	MetricSelectionBest  = "selection_best_score"
	MetricSelectionCands = "selection_candidates"
	OperationAppraise    = "appraise"
	OperationSelect      = "select"
	LabelStatus          = "status"
	LabelObjective       = "objective"
	LabelReason          = "reason"
	StatusSuccess        = "success"
	StatusRejected       = "rejected"
	StatusError          = "error"
)
