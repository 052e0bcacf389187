package main

import (
	"log/slog"

	"perfledger/internal/config"
	"perfledger/internal/notify"
	"perfledger/internal/runner"

	"github.com/spf13/cobra"
)

// newRunner allows mocking in tests.
var newRunner = func(cfg config.Config) *runner.Runner {
	r := runner.New(cfg.Shell)
	r.Logger = slog.Default()
	if cfg.SlackWebhook != "" {
		r.Notifier = notify.NewSlackNotifier(cfg.SlackWebhook)
	}
	return r
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Run benchmarks and record them under the current version",
		Long: `Runs every scenario found in *.perf.yaml files under dir (default ./perf,
relative to the project root), stores the averages in the ledger under the
project version, and compares each benchmark with the closest earlier version.
A trailing "*" marks versions recorded from a working tree with uncommitted changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBench,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("count", 0, "Default iterations for scenarios without a count (default 1000)")
	cmd.Flags().String("set-version", "", "Record under this version instead of the manifest's")
	cmd.Flags().Bool("dry-run", false, "Run and report without writing the ledger")
	cmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
}

func runBench(cmd *cobra.Command, args []string) error {
	opts := baseOptions(cmd)
	if len(args) == 1 {
		opts.BenchDir = args[0]
	}
	if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		opts.DefaultCount = n
	}
	opts.Version, _ = cmd.Flags().GetString("set-version")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	if f, _ := cmd.Flags().GetString("metrics-file"); f != "" {
		opts.MetricsFile = f
	}

	r := newRunner(config.Get())
	_, err := r.Run(cmd.Context(), opts)
	return err
}
