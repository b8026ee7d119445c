package middleware

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

// DefaultTracerName is the instrumentation name used when none is given.
const DefaultTracerName = "github.com/ahrav/teamform"

var _ ports.PlanScorer = (*TracingScorer)(nil)

// TracingScorer wraps each appraisal in an OpenTelemetry span carrying the
// plan shape, the resulting scores as an event, and error status.
type TracingScorer struct {
	next   ports.PlanScorer
	tracer trace.Tracer
}

// NewTracingScorer wraps next with spans from the global tracer provider
// under tracerName.
func NewTracingScorer(next ports.PlanScorer, tracerName string) *TracingScorer {
	if tracerName == "" {
		tracerName = DefaultTracerName
	}
	return &TracingScorer{next: next, tracer: otel.Tracer(tracerName)}
}

// TracingMiddleware returns a Middleware that wraps scorers in a
// TracingScorer.
func TracingMiddleware(tracerName string) Middleware {
	return func(next ports.PlanScorer) ports.PlanScorer {
		return NewTracingScorer(next, tracerName)
	}
}

// Appraise scores plan inside a "PlanScorer.Appraise" span.
func (t *TracingScorer) Appraise(ctx context.Context, plan *domain.Plan) (*domain.Appraisal, error) {
	ctx, span := t.tracer.Start(ctx, "PlanScorer.Appraise")
	defer span.End()

	if plan != nil {
		span.SetAttributes(
			attribute.String("plan.id", plan.ID),
			attribute.Int("plan.teams", len(plan.Teams)),
			attribute.Int("plan.seats", plan.Seats()),
		)
	}

	appraisal, err := t.next.Appraise(ctx, plan)
	if err != nil {
		span.RecordError(err)
		var planErr *domain.PlanError
		if errors.As(err, &planErr) {
			span.SetAttributes(attribute.Int("plan.team_index", planErr.TeamIndex))
			span.SetStatus(codes.Error, "plan rejected")
		} else {
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	attrs := make([]attribute.KeyValue, 0, len(appraisal.Objectives)+1)
	attrs = append(attrs, attribute.Float64("score", appraisal.Score))
	for _, o := range appraisal.Objectives {
		attrs = append(attrs, attribute.Float64("objective."+o.Objective, o.Score))
	}
	span.AddEvent("plan.appraised", trace.WithAttributes(attrs...))
	span.SetStatus(codes.Ok, "")

	return appraisal, nil
}
