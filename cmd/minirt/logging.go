package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/minirt/internal/config"
)

// newLogger builds the command logger. Logs go to stderr unless a log file
// is configured, in which case they go through a rotating writer. The
// returned func releases the writer.
func newLogger(c config.LoggingConfig, stderr io.Writer) (*slog.Logger, func()) {
	out := stderr
	closeFn := func() {}

	if c.File != "" {
		lj := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
		}
		out = lj
		closeFn = func() { _ = lj.Close() }
	}

	opts := &slog.HandlerOptions{Level: c.Level}
	var h slog.Handler
	if c.Format == "json" {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h), closeFn
}
