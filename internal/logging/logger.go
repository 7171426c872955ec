package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"dr-failover-lambda/internal/config"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger from the logging configuration.
// In Lambda every entry carries the function name, version and stage.
func New(cfg *config.Config) (*logrus.Logger, error) {
	return newLogger(cfg, config.GetServerlessConfig(), os.Stdout)
}

func newLogger(cfg *config.Config, sc *config.ServerlessConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch cfg.Logging.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}

	if sc != nil && sc.IsLambda {
		logger.AddHook(&defaultFieldsHook{fields: logrus.Fields{
			"function_name":    sc.FunctionName,
			"function_version": sc.FunctionVersion,
			"stage":            cfg.Stage,
		}})
	}

	return logger, nil
}

// Discard returns a logger that drops every entry
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// defaultFieldsHook adds fixed fields to entries that do not already set them
type defaultFieldsHook struct {
	fields logrus.Fields
}

func (h *defaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *defaultFieldsHook) Fire(entry *logrus.Entry) error {
	for key, value := range h.fields {
		if _, ok := entry.Data[key]; !ok {
			entry.Data[key] = value
		}
	}
	return nil
}
