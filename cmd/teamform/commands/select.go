package commands

import (
	"github.com/spf13/cobra"

	"github.com/ahrav/teamform/internal/application"
)

type selectOptions struct {
	cyclePath   string
	configPath  string
	concurrency int
	showMetrics bool
}

func newSelectCommand() *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the best candidate plan of a cycle",
		Long: `Select scores all candidate plans in parallel and prints the highest
scoring one. Ties go to the plan listed first. Rejected candidates are
listed after the winner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.cyclePath, "cycle", "", "path to the cycle document (YAML or JSON)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to an appraiser config overriding the cycle's")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", application.DefaultMaxConcurrency, "number of plans scored at once")
	cmd.Flags().BoolVar(&opts.showMetrics, "metrics", false, "print collected metrics after selection")
	_ = cmd.MarkFlagRequired("cycle")

	return cmd
}

func runSelect(cmd *cobra.Command, opts *selectOptions) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts.cyclePath, opts.configPath)
	if err != nil {
		return err
	}

	selector, err := application.NewSelector(s.scorer,
		application.WithMaxConcurrency(opts.concurrency),
		application.WithSelectionMetrics(s.metrics),
	)
	if err != nil {
		return err
	}

	sel, err := selector.Select(ctx, s.cycle.Plans)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	writePoolSummary(w, s.cycle.Pool, len(s.cycle.Plans))
	writeSelection(w, sel)

	if opts.showMetrics {
		if err := writeMetricsSummary(w, s.registry); err != nil {
			return err
		}
	}
	return nil
}
