package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config selects the level and output format of the process logger.
type Config struct {
	Level  string    `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	Format string    `mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output io.Writer `mapstructure:"-"`
}

// New builds a logrus logger from cfg. Empty values default to info/text on stderr.
func New(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	level := logrus.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, PadLevelText: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger == nil {
		return Discard()
	}
	return logger
}

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// CorrelationIDField is the log field carrying the correlation id.
const CorrelationIDField = "correlation_id"

// WithCorrelationID attaches a fresh correlation id to ctx unless one is
// already present, and returns it.
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	if id := CorrelationID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return context.WithValue(ctx, correlationIDKey, id), id
}

// CorrelationID reads the correlation id from ctx.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// FromContext decorates logger with the correlation id carried by ctx.
func FromContext(ctx context.Context, logger logrus.FieldLogger) logrus.FieldLogger {
	logger = OrDiscard(logger)
	if id := CorrelationID(ctx); id != "" {
		return logger.WithField(CorrelationIDField, id)
	}
	return logger
}
