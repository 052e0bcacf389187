package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"perfledger/internal/config"
	"perfledger/internal/project"
	"perfledger/internal/runner"
	"perfledger/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer telemetry.CloseLogger()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		telemetry.CloseLogger()
		exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "perfledger [dir]",
		Short: "Run micro-benchmarks and compare them against earlier versions",
		Long: `perfledger discovers *.perf.yaml benchmark definitions under a directory
of the project (default ./perf), runs every scenario, and records the averaged
durations in a version-keyed ledger (perf.list) at the project root. Each
benchmark is then compared with the closest earlier version that measured it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
		RunE: runBench,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is .perfledger.yaml in the project)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("log-file", "", "Append JSON logs to this file")
	pf.StringP("project-dir", "C", ".", "Directory where the project root search starts")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("ledger", "", "Ledger file, relative to the project root (default perf.list)")
	bindFlags(pf, map[string]string{
		"verbose":     "verbose",
		"log_file":    "log-file",
		"project_dir": "project-dir",
		"no_color":    "no-color",
		"ledger_file": "ledger",
	})

	addRunFlags(cmd)
	cmd.AddCommand(newRunCmd(), newHistoryCmd(), newCompareCmd())
	return cmd
}

// bindFlags binds viper keys to flags, so flags override file and env values.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cfgFile string) error {
	start := viper.GetString("project_dir")
	if start == "" {
		start = "."
	}
	dirs := []string{start}
	if root, err := project.FindRoot(start, project.DefaultManifests); err == nil {
		dirs = append(dirs, root)
	}

	if err := config.Load(cfgFile, dirs...); err != nil {
		return err
	}
	if err := config.ValidateConfig(); err != nil {
		return err
	}

	cfg := config.Get()
	if err := telemetry.InitLogger(cfg.Verbose, cfg.LogFile); err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "path", used)
	}
	return nil
}

// baseOptions builds runner options from the resolved configuration.
func baseOptions(cmd *cobra.Command) runner.Options {
	cfg := config.Get()
	return runner.Options{
		ProjectDir:   viper.GetString("project_dir"),
		BenchDir:     cfg.BenchDir,
		LedgerFile:   cfg.LedgerFile,
		Manifests:    cfg.Manifests,
		DefaultCount: cfg.DefaultCount,
		NoColor:      cfg.NoColor,
		MetricsFile:  cfg.MetricsFile,
		Stdout:       cmd.OutOrStdout(),
	}
}
