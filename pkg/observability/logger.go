// Package observability provides logging and metrics for the plugin
// framework. Logging uses logrus; metrics are plain Prometheus collectors
// registered against a caller-supplied registry so embedding applications
// decide how (or whether) to expose them.
package observability

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logrus logger with a full-timestamp text formatter.
// Unknown level strings fall back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// NewNopLogger returns a logger that discards everything. Useful as a
// default when the caller does not care about framework logs.
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
