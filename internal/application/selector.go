package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

// DefaultMaxConcurrency is the number of candidates a Selector scores at
// once when no limit is configured.
const DefaultMaxConcurrency = 4

// Rejection records a candidate discarded for violating a precondition.
type Rejection struct {
	// Index is the candidate's position in the input.
	Index int
	// PlanID is the candidate's label, if any.
	PlanID string
	// Err is the precondition error returned by the scorer.
	Err error
}

// Selection is the outcome of one selection run.
type Selection struct {
	// ID uniquely identifies the run in logs and reports.
	ID uuid.UUID
	// Best is the highest scoring valid candidate.
	Best *domain.Appraisal
	// BestIndex is Best's position in the input.
	BestIndex int
	// Candidates is index-aligned with the input; rejected entries are nil.
	Candidates []*domain.Appraisal
	// Rejected lists discarded candidates in input order.
	Rejected []Rejection
}

// Selector scores a batch of candidate plans in parallel and keeps the
// best one. It is the thin caller an iterative generator drives.
type Selector struct {
	scorer         ports.PlanScorer
	maxConcurrency int
	metrics        ports.MetricsCollector
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithMaxConcurrency bounds how many candidates are scored at once.
// Values below 1 are treated as 1.
func WithMaxConcurrency(n int) SelectorOption {
	return func(s *Selector) { s.maxConcurrency = max(1, n) }
}

// WithSelectionMetrics reports run latency, candidate and rejection counts
// and the winning score to m.
func WithSelectionMetrics(m ports.MetricsCollector) SelectorOption {
	return func(s *Selector) { s.metrics = m }
}

// NewSelector creates a Selector around scorer.
func NewSelector(scorer ports.PlanScorer, opts ...SelectorOption) (*Selector, error) {
	if scorer == nil {
		return nil, fmt.Errorf("plan scorer cannot be nil")
	}
	s := &Selector{scorer: scorer, maxConcurrency: DefaultMaxConcurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Select scores every plan and returns the best.
//
// Candidates failing a precondition are recorded in Selection.Rejected and
// otherwise ignored. Any other scoring error, or cancellation of ctx,
// aborts the run. The highest score wins and ties go to the earliest
// candidate, so the result does not depend on scheduling. Select returns
// ErrNoCandidates for an empty batch and ErrNoValidPlan when every
// candidate was rejected.
func (s *Selector) Select(ctx context.Context, plans []*domain.Plan) (*Selection, error) {
	if len(plans) == 0 {
		return nil, ErrNoCandidates
	}

	start := time.Now()
	sel := &Selection{
		ID:         uuid.New(),
		BestIndex:  -1,
		Candidates: make([]*domain.Appraisal, len(plans)),
	}
	logger := logr.FromContextOrDiscard(ctx).WithValues("selection_id", sel.ID.String())
	logger.V(1).Info("selection started", "candidates", len(plans), "max_concurrency", s.maxConcurrency)

	rejections := make([]error, len(plans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, plan := range plans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			appraisal, err := s.scorer.Appraise(gctx, plan)
			if err != nil {
				if domain.IsPrecondition(err) {
					rejections[i] = err
					return nil
				}
				return fmt.Errorf("failed to score candidate %d: %w", i, err)
			}
			sel.Candidates[i] = appraisal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error(err, "selection aborted")
		return nil, err
	}

	for i, appraisal := range sel.Candidates {
		if err := rejections[i]; err != nil {
			r := Rejection{Index: i, Err: err}
			if plans[i] != nil {
				r.PlanID = plans[i].ID
			}
			sel.Rejected = append(sel.Rejected, r)
			logger.V(1).Info("candidate rejected", "index", i, "plan", r.PlanID, "reason", err.Error())
			continue
		}
		if sel.Best == nil || appraisal.Score > sel.Best.Score {
			sel.Best = appraisal
			sel.BestIndex = i
		}
	}

	s.record(sel, len(plans), time.Since(start))

	if sel.Best == nil {
		return nil, fmt.Errorf("%w: %d of %d candidates rejected", ErrNoValidPlan, len(sel.Rejected), len(plans))
	}

	logger.Info("plan selected",
		"plan", sel.Best.PlanID,
		"index", sel.BestIndex,
		"score", sel.Best.Score,
		"rejected", len(sel.Rejected),
	)
	return sel, nil
}

func (s *Selector) record(sel *Selection, candidates int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordLatency(ports.OperationSelect, elapsed, nil)
	s.metrics.RecordGauge(ports.MetricSelectionCands, float64(candidates), nil)
	if n := len(sel.Rejected); n > 0 {
		s.metrics.RecordCounter(ports.MetricRejections, float64(n), nil)
	}
	if sel.Best != nil {
		s.metrics.RecordGauge(ports.MetricSelectionBest, sel.Best.Score, nil)
	}
}
