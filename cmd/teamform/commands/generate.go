package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/application"
	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/testutils"
)

type generateOptions struct {
	output string
	seed   int64
	shape  testutils.CycleShape
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{shape: testutils.DefaultCycleShape()}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic cycle document for testing",
		Long: `Generate writes a random but structurally valid cycle document: a pool
of voters, goals and advanced participants plus candidate plans. Use a fixed
--seed for reproducible output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "testdata/cycle.yaml", "output file path")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed; 0 uses the current time")
	cmd.Flags().IntVar(&opts.shape.Participants, "participants", opts.shape.Participants, "number of participants")
	cmd.Flags().IntVar(&opts.shape.Goals, "goals", opts.shape.Goals, "number of goals")
	cmd.Flags().IntVar(&opts.shape.Advanced, "advanced", opts.shape.Advanced, "number of advanced participants")
	cmd.Flags().IntVar(&opts.shape.Plans, "plans", opts.shape.Plans, "number of candidate plans")
	cmd.Flags().IntVar(&opts.shape.TeamSize, "team-size", opts.shape.TeamSize, "base team size")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if opts.shape.Participants < 1 || opts.shape.Goals < 1 || opts.shape.TeamSize < 1 || opts.shape.Plans < 1 {
		return fmt.Errorf("participants, goals, plans and team-size must be positive")
	}
	if opts.shape.Advanced < 0 {
		return fmt.Errorf("advanced must not be negative")
	}
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cycle := testutils.GenerateSyntheticCycle(opts.shape, seed)
	doc := application.CycleDocument{
		Pool: application.PoolDocument{
			Votes:    cycle.Votes,
			Goals:    cycle.Goals,
			Advanced: cycle.Advanced,
		},
		Plans: make([]domain.Plan, len(cycle.Plans)),
	}
	for i, p := range cycle.Plans {
		doc.Plans[i] = *p
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode cycle: %w", err)
	}
	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cycle: %w", err)
	}

	green.Fprintf(cmd.OutOrStdout(), "✓ Generated cycle (seed %d)\n", seed)
	fmt.Fprintf(cmd.OutOrStdout(), "- Path: %s\n- Participants: %d\n- Goals: %d\n- Plans: %d\n",
		opts.output, opts.shape.Participants, len(cycle.Goals), len(doc.Plans))
	return nil
}
