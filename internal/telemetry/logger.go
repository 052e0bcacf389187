package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// logOutput is where console logs go. The report owns stdout.
var logOutput io.Writer = os.Stderr

var (
	logMu   sync.Mutex
	logFile *os.File
)

// InitLogger installs the default logger: text on stderr at Warn (Debug when
// debug is set) and, when path is not empty, JSON lines appended to path at
// Debug. A file left open by an earlier call is closed first.
func InitLogger(debug bool, path string) error {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level})

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			slog.SetDefault(slog.New(handler))
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		logFile = f
		handler = teeHandler{
			handler,
			slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
		}
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// CloseLogger closes the log file opened by InitLogger, if any. Later records
// only reach the console.
func CloseLogger() error {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile == nil {
		return nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: slog.LevelWarn})))
	return closeLogFileLocked()
}

func closeLogFileLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// teeHandler sends every record to each handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range t {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t teeHandler) each(fn func(slog.Handler) slog.Handler) teeHandler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}
	return out
}
