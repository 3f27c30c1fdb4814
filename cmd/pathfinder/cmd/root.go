// Package cmd provides the CLI commands for the pathfinder engine.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kraklabs/bipass-pathfinder/internal/logging"
	"github.com/kraklabs/bipass-pathfinder/pkg/version"
)

var loggingCleanup func()

// NewRootCmd creates the root command for the pathfinder CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathfinder <mode> [log_level]",
		Short: "Bidirectional cost-guided path search over an entity graph",
		Long: `pathfinder finds a connecting path between two graph entities using a
bidirectional best-first search with a tunable composite cost function.

Modes:
  playground   run the built-in demo queries against a fixture graph
  optimizer    tune (alpha, beta, gamma) against a query corpus
  benchmark    evaluate fixed hyperparameter configurations`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("pathfinder version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRunE = teardownLogging

	cmd.AddCommand(newPlaygroundCmd())
	cmd.AddCommand(newOptimizerCmd())
	cmd.AddCommand(newBenchmarkCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

var configPath string

// parseLogLevel validates the positional log_level argument per spec §6:
// only "info" and "debug" are accepted, anything else is fatal.
func parseLogLevel(args []string) (string, error) {
	if len(args) == 0 {
		return "info", nil
	}
	switch args[0] {
	case "info", "debug":
		return args[0], nil
	default:
		return "", fmt.Errorf("unknown log level %q: must be \"info\" or \"debug\"", args[0])
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := parseLogLevel(args)
	if err != nil {
		return err
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	return nil
}

func teardownLogging(*cobra.Command, []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
