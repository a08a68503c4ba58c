// Package logging configures the process-wide logrus logger. The terminal is
// owned by the TUI, so entries are written as JSON lines to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup points the standard logger at path and sets its level. The returned
// closer flushes and closes the file.
func Setup(path, level string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	Configure(logrus.StandardLogger(), f, lvl)
	return f, nil
}

// Configure applies the JSON formatter, output and level to l.
func Configure(l *logrus.Logger, out io.Writer, lvl logrus.Level) {
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(out)
	l.SetLevel(lvl)
}

// Discard silences l. Used when logging cannot be set up and in tests.
func Discard(l *logrus.Logger) {
	l.SetOutput(io.Discard)
}
