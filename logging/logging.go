// Package logging builds the [slog.Logger] used by the httpnotifier command.
package logging

import (
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options controls how [New] builds a logger.
type Options struct {
	Level slog.Level
	// File is an optional path that log records are also appended to, as JSON.
	File string
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// New creates a logger writing to Stderr, as text when it's a terminal and as JSON otherwise.
// The returned [io.Closer] closes the log file, if any, and must be called when logging is done.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	if IsTerminal(out) {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	if len(opts.File) == 0 {
		return slog.New(handler), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler = MergeHandlers(handler, slog.NewJSONHandler(f, handlerOpts))
	return slog.New(handler), f, nil
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
