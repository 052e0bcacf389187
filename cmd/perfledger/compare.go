package main

import (
	"perfledger/internal/config"

	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <version>",
		Short: "Compare a recorded version with its closest predecessor",
		Long: `Prints the stored results of <version> and, for each benchmark, how its
fastest scenario compares with the closest earlier version that measured it.
Nothing is run and the ledger is not modified. Quote dirty versions: "1.2.0*".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newRunner(config.Get()).Compare(baseOptions(cmd), args[0])
			return err
		},
	}
}
