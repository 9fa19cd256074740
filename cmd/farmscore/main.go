// Command farmscore scores farmer profiles offline and manages the scoring
// database schema.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "farmscore",
		Short:         "Farmer credit scoring tools",
		SilenceUsage: true,
	}
	root.AddCommand(newScoreCmd(), newExampleCmd(), newMigrateCmd())
	return root
}
