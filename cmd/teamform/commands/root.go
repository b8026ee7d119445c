// Package commands implements the teamform command line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var versionString = "dev"

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// Execute builds the root command and runs it against os.Args. Errors
// are printed to stderr in red.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

type rootOptions struct {
	verbosity int
	logFormat string
	sync      func() error
}

// NewRootCommand returns the teamform root command with every subcommand
// attached. Each call returns an independent tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "teamform",
		Short: "teamform - score and select team formation plans",
		Long: `teamform scores candidate team formation plans against a pool of
ranked goal votes, recommended team sizes and advanced participant caps,
and selects the best plan of a batch.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.sync != nil {
				_ = opts.sync()
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log encoding: console or json")

	root.AddCommand(newScoreCommand(), newSelectCommand(), newGenerateCommand())
	return root
}

// logger builds a zap logger on stderr and bridges it to logr. Each -v
// enables one more logr verbosity level.
func (o *rootOptions) logger() (logr.Logger, error) {
	var cfg zap.Config
	switch o.logFormat {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return logr.Discard(), fmt.Errorf("unsupported log format %q: want console or json", o.logFormat)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-o.verbosity))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("failed to build logger: %w", err)
	}
	o.sync = zl.Sync
	return zapr.NewLogger(zl), nil
}
