package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLogOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevLogger := logOutput, slog.Default()
	logOutput = &buf
	t.Cleanup(func() {
		CloseLogger()
		logOutput = prevOut
		slog.SetDefault(prevLogger)
	})
	return &buf
}

func TestInitLogger_Levels(t *testing.T) {
	buf := withLogOutput(t)

	require.NoError(t, InitLogger(false, ""))
	slog.Info("hidden info")
	slog.Debug("hidden debug")
	slog.Warn("visible warning")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible warning")

	buf.Reset()
	require.NoError(t, InitLogger(true, ""))
	slog.Debug("debug line", "key", "value")
	assert.Contains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "key=value")
}

func TestInitLogger_File(t *testing.T) {
	buf := withLogOutput(t)
	path := filepath.Join(t.TempDir(), "perfledger.log")

	require.NoError(t, InitLogger(false, path))
	slog.Info("file only", "run_id", "abc")
	slog.Error("both", "error", errors.New("boom"))

	assert.NotContains(t, buf.String(), "file only")
	assert.Contains(t, buf.String(), "boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "file only", rec["msg"])
	assert.Equal(t, "abc", rec["run_id"])
}

func TestInitLogger_ReinitClosesPreviousFile(t *testing.T) {
	withLogOutput(t)
	dir := t.TempDir()

	require.NoError(t, InitLogger(false, filepath.Join(dir, "first.log")))
	first := logFile
	require.NotNil(t, first)

	require.NoError(t, InitLogger(false, filepath.Join(dir, "second.log")))
	assert.NotSame(t, first, logFile)
	_, err := first.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)

	slog.Info("after reinit")
	data, err := os.ReadFile(filepath.Join(dir, "first.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after reinit")

	require.NoError(t, CloseLogger())
	assert.Nil(t, logFile)
	require.NoError(t, CloseLogger())
}

func TestInitLogger_UnwritablePath(t *testing.T) {
	withLogOutput(t)
	err := InitLogger(false, filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.ErrorContains(t, err, "failed to open log file")
	assert.Nil(t, logFile)
}

func TestTeeHandler_WithAttrsAndGroup(t *testing.T) {
	var a, b bytes.Buffer
	h := teeHandler{
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	}

	logger := slog.New(h).With("run", "r1").WithGroup("scenario")
	logger.Info("measured", "title", "quick")

	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "run=r1")
		assert.Contains(t, out, "scenario.title=quick")
	}
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}
