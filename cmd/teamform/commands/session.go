package commands

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahrav/teamform/infrastructure/middleware"
	"github.com/ahrav/teamform/internal/application"
	"github.com/ahrav/teamform/internal/ports"
)

// session is one loaded cycle with an instrumented scorer bound to its pool.
type session struct {
	cycle    *application.Cycle
	scorer   ports.PlanScorer
	metrics  *middleware.PrometheusMetrics
	registry *prometheus.Registry
}

// openSession loads the cycle at cyclePath and builds its appraiser. The
// objective set comes from configPath when given, else from the cycle's
// inline appraiser section, else the defaults.
func openSession(ctx context.Context, cyclePath, configPath string) (*session, error) {
	logger := logr.FromContextOrDiscard(ctx)

	cycle, err := application.LoadCycleFile(cyclePath)
	if err != nil {
		return nil, err
	}
	logger.V(1).Info("cycle loaded",
		"path", cyclePath,
		"voters", len(cycle.Pool.Votes()),
		"goals", len(cycle.Pool.Goals()),
		"advanced", len(cycle.Pool.AdvancedParticipants()),
		"plans", len(cycle.Plans),
	)

	loader, err := application.NewConfigLoader(application.NewDefaultObjectiveRegistry())
	if err != nil {
		return nil, err
	}

	var opts []application.AppraiserOption
	switch {
	case configPath != "":
		set, err := loader.LoadFromFile(ctx, configPath)
		if err != nil {
			return nil, err
		}
		opts = set.Options()
	case cycle.Appraiser != nil:
		set, err := loader.Load(ctx, cycle.Appraiser)
		if err != nil {
			return nil, err
		}
		opts = set.Options()
	default:
		logger.V(1).Info("using default objectives")
	}

	appraiser, err := application.NewObjectiveAppraiser(cycle.Pool, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build appraiser: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := middleware.NewPrometheusMetrics(registry)
	scorer := middleware.Chain(appraiser,
		middleware.TracingMiddleware(middleware.DefaultTracerName),
		middleware.MetricsMiddleware(metrics),
	)

	return &session{
		cycle:    cycle,
		scorer:   scorer,
		metrics:  metrics,
		registry: registry,
	}, nil
}
