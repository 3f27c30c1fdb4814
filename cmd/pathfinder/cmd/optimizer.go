package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kraklabs/bipass-pathfinder/internal/harness"
	"github.com/kraklabs/bipass-pathfinder/internal/output"
)

func newOptimizerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimizer [log_level]",
		Short: "Tune (alpha, beta, gamma) against the optimizer query set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.NewColor(cmd.OutOrStdout())

			cfg, pf, st, err := buildRunContext()
			if err != nil {
				return err
			}
			defer st.Close()

			corpus, err := loadCorpus(cfg)
			if err != nil {
				return err
			}

			out.Statusf("", "optimizing over %d queries", len(corpus.Optimizer))

			result, err := harness.RunOptimizer(pf, corpus.Optimizer, cfg.OptimizerIterations, cfg.OptimizerResultsPath)
			if err != nil {
				return err
			}

			out.Successf("best weights: alpha=%.4f beta=%.4f gamma=%.4f objective=%.4f",
				result.Weights.Alpha, result.Weights.Beta, result.Weights.Gamma, result.Objective)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "results written to %s\n", cfg.OptimizerResultsPath)
			return err
		},
	}
}
