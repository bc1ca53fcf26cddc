// Package logging builds the process logger from config.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrklmrrr/TODOIST/internal/config"
)

// New returns a logger writing to cfg.File (rotated) when set, otherwise to stderr.
// The returned closer releases the log file and is never nil.
func New(cfg config.LogConfig, service string) (*logrus.Logger, io.Closer, error) {
	return build(cfg, service, os.Stderr)
}

// NewFileOnly is like New but discards output when no file is configured. The terminal UI
// uses it so log lines never land on the screen it draws.
func NewFileOnly(cfg config.LogConfig, service string) (*logrus.Logger, io.Closer, error) {
	return build(cfg, service, io.Discard)
}

func build(cfg config.LogConfig, service string, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)

	switch cfg.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		})
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		logger.SetOutput(lj)
		closer = lj
	} else {
		logger.SetOutput(fallback)
	}

	if service != "" {
		logger.AddHook(serviceHook{service: service})
	}
	return logger, closer, nil
}

type serviceHook struct {
	service string
}

func (serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = h.service
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
