package middleware

import "github.com/ahrav/teamform/internal/ports"

// Middleware wraps a PlanScorer to add cross-cutting behavior such as
// metrics or tracing without changing how plans are scored.
type Middleware func(ports.PlanScorer) ports.PlanScorer

// Chain wraps scorer with mws. The first middleware is the outermost, so
// it observes the full cost of the ones after it.
func Chain(scorer ports.PlanScorer, mws ...Middleware) ports.PlanScorer {
	for i := len(mws) - 1; i >= 0; i-- {
		scorer = mws[i](scorer)
	}
	return scorer
}
