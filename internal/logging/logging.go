// Package logging configures the shared logrus logger for the lavahop
// commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const (
	// FileName is the log file written inside the log directory.
	FileName = "lavahop.log"
	// maxLogSize triggers a rotation to FileName+".1" when exceeded.
	maxLogSize = 10 * 1024 * 1024
)

// Options selects where and how verbosely to log.
type Options struct {
	Level string
	// Dir enables file logging. An empty Dir logs to Fallback.
	Dir string
	// Fallback receives log output when Dir is empty. Nil discards, which is
	// what full-screen frontends want.
	Fallback io.Writer
	JSON     bool
}

// Setup configures logger and returns the opened log file, if any. The
// caller closes it on exit.
func Setup(logger *log.Logger, opts Options) (*os.File, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)
	if opts.JSON {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: opts.Dir != ""})
	}

	if opts.Dir == "" {
		out := opts.Fallback
		if out == nil {
			out = io.Discard
		}
		logger.SetOutput(out)
		return nil, nil
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", opts.Dir, err)
	}
	path := filepath.Join(opts.Dir, FileName)
	if err := rotate(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger.SetOutput(f)
	return f, nil
}

func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("logging: rotate %s: %w", path, err)
	}
	return nil
}
