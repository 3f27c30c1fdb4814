package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kraklabs/bipass-pathfinder/internal/harness"
	"github.com/kraklabs/bipass-pathfinder/internal/output"
)

func newPlaygroundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "playground [log_level]",
		Short: "Run the built-in demo queries against a fixture graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.NewColor(cmd.OutOrStdout())
			store := harness.NewPlaygroundStore()
			harness.RunPlayground(store, harness.DefaultPlaygroundQueries(), out)
			return nil
		},
	}
}
