package main

import (
	"perfledger/internal/config"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var benchmark, html string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the fastest scenario of every benchmark for each recorded version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRunner(config.Get())
			if html != "" {
				return r.HistoryChart(baseOptions(cmd), benchmark, html)
			}
			return r.History(baseOptions(cmd), benchmark)
		},
	}
	cmd.Flags().StringVarP(&benchmark, "benchmark", "b", "", "Only show this benchmark")
	cmd.Flags().StringVar(&html, "html", "", "Write an HTML line chart per benchmark to this file instead")
	return cmd
}
