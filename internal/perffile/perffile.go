// Package perffile reads declarative benchmark definition files and replays
// them into a collector.Run.
package perffile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"perfledger/internal/collector"

	"gopkg.in/yaml.v3"
)

// File is a parsed definition file.
type File struct {
	Path       string      `yaml:"-"`
	Benchmarks []Benchmark `yaml:"benchmarks"`
	// Scenarios declared outside any benchmark are grouped under "".
	Scenarios []Scenario `yaml:"scenarios"`
}

// Benchmark is one suite of scenarios.
type Benchmark struct {
	Title     string            `yaml:"title"`
	Dir       string            `yaml:"dir"`
	Env       map[string]string `yaml:"env"`
	Scenarios []Scenario        `yaml:"scenarios"`
}

// Scenario is a command timed Count times. A nil Count means the default.
type Scenario struct {
	Title string            `yaml:"title"`
	Count *int              `yaml:"count"`
	Run   string            `yaml:"run"`
	Dir   string            `yaml:"dir"`
	Env   map[string]string `yaml:"env"`
}

// Parse decodes a definition file. Unknown fields are rejected.
func Parse(r io.Reader, name string) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{Path: name}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	f.Path = name
	return &f, nil
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data), path)
}

// Apply declares every benchmark and scenario of f on run, in file order.
// Scenario bodies run through exec. Apply stops at the first error; a failed
// command fails run and leaves no result for its scenario.
func (f *File) Apply(ctx context.Context, run *collector.Run, exec Executor) error {
	base := filepath.Dir(f.Path)

	for _, s := range f.Scenarios {
		var execErr error
		body := bodyFor(ctx, exec, s.command(base, "", nil), &execErr)
		if err := declare(run, nil, s, body); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		if execErr != nil {
			err := run.Fail("", s.Title, fmt.Errorf("scenario %q: %w", s.Title, execErr))
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}

	for _, b := range f.Benchmarks {
		err := run.Benchmark(b.Title, func(suite *collector.Suite) {
			for _, s := range b.Scenarios {
				var execErr error
				body := bodyFor(ctx, exec, s.command(base, b.Dir, b.Env), &execErr)
				if err := declare(run, suite, s, body); err != nil {
					return
				}
				if execErr != nil {
					run.Fail(b.Title, s.Title,
						fmt.Errorf("benchmark %q, scenario %q: %w", b.Title, s.Title, execErr))
					return
				}
			}
		})
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	return nil
}

// declare routes a scenario to the suite, or to the run when suite is nil.
func declare(run *collector.Run, suite *collector.Suite, s Scenario, body func()) error {
	switch {
	case suite != nil && s.Count != nil:
		return suite.ScenarioN(s.Title, *s.Count, body)
	case suite != nil:
		return suite.Scenario(s.Title, body)
	case s.Count != nil:
		return run.ScenarioN(s.Title, *s.Count, body)
	default:
		return run.Scenario(s.Title, body)
	}
}

// bodyFor wraps cmd into a scenario body. A scenario without a command has
// no body. After the first failure the body turns into a no-op and the error
// is left in *errp, so the remaining iterations cost nothing.
func bodyFor(ctx context.Context, exec Executor, cmd Command, errp *error) func() {
	if cmd.Run == "" {
		return nil
	}
	return func() {
		if *errp != nil {
			return
		}
		if err := exec.Execute(ctx, cmd); err != nil {
			*errp = err
		}
	}
}

func (s Scenario) command(base, suiteDir string, suiteEnv map[string]string) Command {
	dir := base
	if suiteDir != "" {
		dir = resolve(base, suiteDir)
	}
	if s.Dir != "" {
		dir = resolve(dir, s.Dir)
	}

	env := make(map[string]string, len(suiteEnv)+len(s.Env))
	for k, v := range suiteEnv {
		env[k] = v
	}
	for k, v := range s.Env {
		env[k] = v
	}
	return Command{Run: s.Run, Dir: dir, Env: env}
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
