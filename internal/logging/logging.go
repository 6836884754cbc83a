// Package logging sets up the file logger. The terminal belongs to the UI, so
// nothing is written to stdout or stderr while the program runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/calbudget/internal/config"
)

// Setup returns a JSON logger writing to cfg.Path and the file to close on exit.
// Every entry carries the session id of this run.
func Setup(cfg config.LogConfig) (*logrus.Entry, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(f, level)
	return logger.WithField("session", uuid.NewString()), f, nil
}

// New builds the JSON logger used across the app.
func New(out io.Writer, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Hooks: make(logrus.LevelHooks),
		Out:   out,
		Level: level,
	}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Entry {
	return logrus.NewEntry(New(io.Discard, logrus.PanicLevel))
}
