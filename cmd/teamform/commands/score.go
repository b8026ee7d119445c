package commands

import (
	"github.com/spf13/cobra"

	"github.com/ahrav/teamform/internal/domain"
)

type scoreOptions struct {
	cyclePath   string
	configPath  string
	showMetrics bool
}

func newScoreCommand() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every candidate plan of a cycle",
		Long: `Score appraises each candidate plan in the cycle file and prints its
combined score with the per-objective breakdown. Plans that violate a
structural precondition are reported as rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.cyclePath, "cycle", "", "path to the cycle document (YAML or JSON)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to an appraiser config overriding the cycle's")
	cmd.Flags().BoolVar(&opts.showMetrics, "metrics", false, "print collected metrics after scoring")
	_ = cmd.MarkFlagRequired("cycle")

	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts.cyclePath, opts.configPath)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	writePoolSummary(w, s.cycle.Pool, len(s.cycle.Plans))

	for _, plan := range s.cycle.Plans {
		appraisal, err := s.scorer.Appraise(ctx, plan)
		switch {
		case err == nil:
			writeAppraisal(w, appraisal, false)
		case domain.IsPrecondition(err):
			writeRejection(w, plan.ID, err)
		default:
			return err
		}
	}

	if opts.showMetrics {
		if err := writeMetricsSummary(w, s.registry); err != nil {
			return err
		}
	}
	return nil
}
