package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched through errors.Is by the typed errors below.
var (
	ErrConfiguration   = errors.New("configuration error")
	ErrProjectNotFound = errors.New("project not found")
	ErrLedgerCorrupt   = errors.New("ledger corrupt")
)

// ConfigurationError is raised when a scenario cannot be resolved into
// something runnable. It always aborts the run.
type ConfigurationError struct {
	Benchmark string
	Scenario  string
	Reason    string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	switch {
	case e.Scenario != "":
		fmt.Fprintf(&b, " (benchmark %q, scenario %q)", e.Benchmark, e.Scenario)
	case e.Benchmark != "":
		fmt.Fprintf(&b, " (benchmark %q)", e.Benchmark)
	}
	return b.String()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(benchmark, scenario, reason string) *ConfigurationError {
	return &ConfigurationError{
		Benchmark: benchmark,
		Scenario:  scenario,
		Reason:    reason,
	}
}

// ProjectNotFoundError reports that no ancestor of Start holds a manifest.
type ProjectNotFoundError struct {
	Start     string
	Manifests []string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("unable to locate project directory: no %s found in %s or any parent",
		strings.Join(e.Manifests, ", "), e.Start)
}

func (e *ProjectNotFoundError) Is(target error) bool {
	return target == ErrProjectNotFound
}

// LedgerCorruptError reports a ledger file that exists but cannot be decoded.
type LedgerCorruptError struct {
	Path string
	Err  error
}

func (e *LedgerCorruptError) Error() string {
	return fmt.Sprintf("ledger %s is corrupt: %v", e.Path, e.Err)
}

func (e *LedgerCorruptError) Unwrap() error {
	return e.Err
}

func (e *LedgerCorruptError) Is(target error) bool {
	return target == ErrLedgerCorrupt
}
