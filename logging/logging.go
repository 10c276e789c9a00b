// Package logging builds the file logger used while the terminal UI owns stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const prefix = "tasklist"

// Options holds configuration for the debug logger.
type Options struct {
	// File receives log lines; empty discards them.
	File  string
	Level log.Level
}

// New creates a logger writing to opts.File. The returned close func is never nil.
func New(opts Options) (*log.Logger, func() error, error) {
	if opts.File == "" {
		return NewWithWriter(io.Discard, opts.Level), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(f, opts.Level), f.Close, nil
}

// NewWithWriter creates a logger over an arbitrary writer.
func NewWithWriter(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
