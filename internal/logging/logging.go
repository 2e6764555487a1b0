// Package logging provides structured logging using slog, with console
// output and an optional log file tee.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options holds logging configuration.
type Options struct {
	Level string // "debug" | "info" | "warn" | "error"
	// FilePath, when set, duplicates every record into an append-only file.
	FilePath string
}

// Setup builds the logger, installs it as the slog default, and returns it
// together with a close function for the log file (a no-op when no file was
// requested).
func Setup(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(opts.Level)

	var w io.Writer = os.Stdout
	closeFn := func() error { return nil }

	if strings.TrimSpace(opts.FilePath) != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closeFn = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Component returns a logger tagged with a component name.
func Component(name string) *slog.Logger {
	return slog.With("component", name)
}
