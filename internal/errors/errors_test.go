package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "configuration",
			err:      NewConfigurationError("Sort", "bubble", "benchmark contents not defined"),
			sentinel: ErrConfiguration,
			contains: "benchmark contents not defined",
		},
		{
			name:     "project not found",
			err:      &ProjectNotFoundError{Start: "/tmp/x", Manifests: []string{"package.json"}},
			sentinel: ErrProjectNotFound,
			contains: "package.json",
		},
		{
			name:     "ledger corrupt",
			err:      &LedgerCorruptError{Path: "perf.list", Err: fmt.Errorf("bad")},
			sentinel: ErrLedgerCorrupt,
			contains: "perf.list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("run failed: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.Contains(t, wrapped.Error(), tt.contains)
		})
	}
}

func TestConfigurationError_NoScenario(t *testing.T) {
	err := NewConfigurationError("", "", "default count must be positive")
	assert.Equal(t, "default count must be positive", err.Error())

	err = NewConfigurationError("Sort", "", "benchmark contents not defined")
	assert.Equal(t, `benchmark contents not defined (benchmark "Sort")`, err.Error())
}

func TestLedgerCorruptError_Unwrap(t *testing.T) {
	var syntaxErr *json.SyntaxError
	inner := json.Unmarshal([]byte("{"), &map[string]any{})
	err := &LedgerCorruptError{Path: "perf.list", Err: inner}

	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.False(t, errors.Is(err, ErrConfiguration))
}
