package middleware

import (
	"context"
	"time"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

var _ ports.PlanScorer = (*MetricsScorer)(nil)

// MetricsScorer reports appraisal latency, outcome and score
// distributions for every plan it scores.
type MetricsScorer struct {
	next      ports.PlanScorer
	collector ports.MetricsCollector
}

// NewMetricsScorer wraps next so its appraisals report to collector.
func NewMetricsScorer(next ports.PlanScorer, collector ports.MetricsCollector) *MetricsScorer {
	return &MetricsScorer{next: next, collector: collector}
}

// MetricsMiddleware returns a Middleware that wraps scorers in a
// MetricsScorer.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next ports.PlanScorer) ports.PlanScorer {
		return NewMetricsScorer(next, collector)
	}
}

// Appraise scores plan with the wrapped scorer and records the outcome.
// Precondition violations count as rejected rather than errored.
func (m *MetricsScorer) Appraise(ctx context.Context, plan *domain.Plan) (*domain.Appraisal, error) {
	start := time.Now()
	appraisal, err := m.next.Appraise(ctx, plan)
	if m.collector == nil {
		return appraisal, err
	}

	m.collector.RecordLatency(ports.OperationAppraise, time.Since(start), nil)

	status := ports.StatusSuccess
	switch {
	case err == nil:
	case domain.IsPrecondition(err):
		status = ports.StatusRejected
	default:
		status = ports.StatusError
	}
	m.collector.RecordCounter(ports.MetricAppraisals, 1, map[string]string{ports.LabelStatus: status})

	if err != nil {
		return nil, err
	}

	m.collector.RecordHistogram(ports.MetricAppraisalScore, appraisal.Score, nil)
	for _, o := range appraisal.Objectives {
		m.collector.RecordHistogram(ports.MetricObjectiveScore, o.Score, map[string]string{
			ports.LabelObjective: o.Objective,
		})
	}
	return appraisal, nil
}
