package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kraklabs/bipass-pathfinder/internal/harness"
	"github.com/kraklabs/bipass-pathfinder/internal/output"
)

func newBenchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark [log_level]",
		Short: "Evaluate fixed hyperparameter configurations over the benchmark query set",
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

			out.Statusf("", "benchmarking over %d queries", len(corpus.Benchmark))

			configs := harness.CanonicalConfigs()
			optimized, err := harness.RunOptimizer(pf, corpus.Optimizer, cfg.OptimizerIterations, cfg.OptimizerResultsPath)
			if err == nil {
				configs = append(configs, optimized.Weights)
			}

			summaries, err := harness.RunBenchmark(pf, corpus.Benchmark, configs, cfg.BenchmarkResultsPath)
			if err != nil {
				return err
			}

			for _, s := range summaries {
				out.Successf("(%.2f,%.2f,%.2f): success=%.2f%% mean_visited=%.1f mean_path_len=%.1f mean_wallclock=%.4fs",
					s.Alpha, s.Beta, s.Gamma, s.SuccessRate*100, s.MeanVisitedOnSuccess, s.MeanPathLength, s.MeanWallClockSeconds)
			}

			return nil
		},
	}
}
