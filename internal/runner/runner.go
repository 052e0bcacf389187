package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"perfledger/internal/collector"
	"perfledger/internal/discovery"
	"perfledger/internal/git"
	"perfledger/internal/ledger"
	"perfledger/internal/notify"
	"perfledger/internal/perffile"
	"perfledger/internal/project"
	"perfledger/internal/telemetry"
	"perfledger/internal/ui"

	"github.com/google/uuid"
)

// Options controls a single benchmark run.
type Options struct {
	ProjectDir   string   // where the project root search starts
	BenchDir     string   // benchmark directory, relative to the project root
	LedgerFile   string   // ledger path, relative to the project root
	Manifests    []string // project manifest file names
	Version      string   // overrides the manifest version when set
	DefaultCount int
	DryRun       bool // measure and report, but leave the ledger alone
	NoColor      bool
	MetricsFile  string
	Stdout       io.Writer
}

// Result describes what a run did.
type Result struct {
	RunID       string
	Commit      string // HEAD of the enclosing repository, if any
	Root        string
	Key         ledger.VersionKey
	Files       []string
	Ledger      ledger.Ledger
	Comparisons []ledger.Comparison
	// NoBenchmarks is set when no definition files were found.
	NoBenchmarks bool
}

// Runner ties discovery, measurement, the ledger and the report together.
type Runner struct {
	Git       git.IClient
	Executor  perffile.Executor
	Notifier  notify.Notifier // optional
	Logger    *slog.Logger
	OpenStore func(path string) ledger.Store // store for a resolved ledger path

	collectorOpts []collector.Option
}

// New creates a Runner with the default collaborators.
func New(shell string) *Runner {
	return &Runner{
		Git:       git.NewClient(),
		Executor:  perffile.NewShellExecutor(shell),
		Logger:    slog.Default(),
		OpenStore: ledger.OpenFileStore,
	}
}

// WithCollectorOptions appends options passed to every collector.Run.
func (r *Runner) WithCollectorOptions(opts ...collector.Option) *Runner {
	r.collectorOpts = append(r.collectorOpts, opts...)
	return r
}

// Locate resolves the project root and the version key for this run.
func (r *Runner) Locate(opts Options) (root string, key ledger.VersionKey, err error) {
	root, err = project.FindRoot(opts.ProjectDir, opts.Manifests)
	if err != nil {
		return "", "", err
	}

	version := opts.Version
	if version == "" {
		version, err = project.ReadVersion(root, opts.Manifests)
		if err != nil {
			return "", "", err
		}
	}
	if _, err := ledger.ParseVersionKey(version); err != nil {
		return "", "", fmt.Errorf("project version: %w", err)
	}

	dirty, err := r.Git.Dirty(root)
	if err != nil {
		return "", "", err
	}
	return root, ledger.CurrentVersionKey(version, dirty), nil
}

// Run executes every definition file under the benchmark directory and
// records the results under the current version.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	root, key, err := r.Locate(opts)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Root: root, Key: key}
	log := r.Logger.With("run_id", res.RunID)
	if sha, err := r.Git.CurrentCommitSHA(root); err == nil {
		res.Commit = sha
		log = log.With("commit", sha)
	}
	log.Info("starting run", "root", root, "version", string(key))

	benchDir := resolve(root, opts.BenchDir)
	res.Files, err = discovery.Collect(benchDir)
	if err != nil {
		return nil, err
	}

	printer := ui.NewPrinter(opts.Stdout, opts.NoColor)
	if len(res.Files) == 0 {
		res.NoBenchmarks = true
		log.Warn("no benchmark definitions found", "dir", benchDir)
		printer.Warn(fmt.Sprintf("No performance tests found in directory: '%s'", opts.BenchDir))
		return res, nil
	}

	copts := append([]collector.Option{
		collector.WithDefaultCount(opts.DefaultCount),
		collector.WithLogger(log),
	}, r.collectorOpts...)
	run := collector.New(copts...)
	for _, path := range res.Files {
		f, err := perffile.Load(path)
		if err != nil {
			return nil, err
		}
		log.Debug("running definition file", "path", path)
		if err := f.Apply(ctx, run, r.Executor); err != nil {
			return nil, err
		}
	}

	ledgerPath := resolve(root, opts.LedgerFile)
	store := r.OpenStore(ledgerPath)
	l, err := store.Load()
	if err != nil {
		return nil, err
	}
	l = ledger.RecordRun(l, key, run.Results())
	if opts.DryRun {
		log.Info("dry run; ledger not written", "path", ledgerPath)
	} else if err := store.Save(l); err != nil {
		return nil, err
	}
	res.Ledger = l

	res.Comparisons = printer.Report(l, key)
	r.afterReport(ctx, log, opts, res)
	return res, nil
}

// afterReport emits metrics and notifications. Failures here are logged only.
func (r *Runner) afterReport(ctx context.Context, log *slog.Logger, opts Options, res *Result) {
	if opts.MetricsFile != "" {
		m := telemetry.NewMetrics()
		m.ObserveRun(res.Key, res.Ledger[res.Key], res.Comparisons)
		if err := m.WriteTextfile(resolve(res.Root, opts.MetricsFile)); err != nil {
			log.Error("failed to write metrics", "error", err)
		}
	}

	regressions := ledger.Regressions(res.Comparisons)
	for _, c := range regressions {
		log.Warn("regression detected", "benchmark", c.Benchmark, "delta_pct", c.DeltaPct)
	}
	if r.Notifier != nil && len(regressions) > 0 {
		if err := r.Notifier.NotifyRegressions(ctx, res.Key, regressions); err != nil {
			log.Error("failed to send regression notification", "error", err)
		}
	}
}

// Compare prints the stored results of version against their predecessors.
func (r *Runner) Compare(opts Options, version string) ([]ledger.Comparison, error) {
	root, err := project.FindRoot(opts.ProjectDir, opts.Manifests)
	if err != nil {
		return nil, err
	}
	l, err := r.OpenStore(resolve(root, opts.LedgerFile)).Load()
	if err != nil {
		return nil, err
	}
	key := ledger.VersionKey(version)
	if _, ok := l[key]; !ok {
		return nil, fmt.Errorf("version %s not found in ledger", version)
	}
	return ui.NewPrinter(opts.Stdout, opts.NoColor).Report(l, key), nil
}

// History prints the ledger table, optionally limited to one benchmark.
func (r *Runner) History(opts Options, benchmark string) error {
	root, err := project.FindRoot(opts.ProjectDir, opts.Manifests)
	if err != nil {
		return err
	}
	l, err := r.OpenStore(resolve(root, opts.LedgerFile)).Load()
	if err != nil {
		return err
	}
	return ui.NewPrinter(opts.Stdout, opts.NoColor).History(l, benchmark)
}

// HistoryChart writes the ledger history as an HTML chart page to path,
// relative to the project root.
func (r *Runner) HistoryChart(opts Options, benchmark, path string) error {
	root, err := project.FindRoot(opts.ProjectDir, opts.Manifests)
	if err != nil {
		return err
	}
	l, err := r.OpenStore(resolve(root, opts.LedgerFile)).Load()
	if err != nil {
		return err
	}

	out := resolve(root, path)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := ui.HistoryChart(f, l, benchmark); err != nil {
		f.Close()
		return fmt.Errorf("failed to render history chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.Logger.Info("history chart written", "path", out)
	return nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
