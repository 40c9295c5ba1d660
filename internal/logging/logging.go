package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey contextKey = "logger"

// Logger is the process-wide logger. Setup configures it once at startup.
var Logger = logrus.New()

// Options configures the process logger.
type Options struct {
	Level  string    // panic, fatal, error, warn, info, debug, trace
	Format string    // "text" or "json"
	Output io.Writer // defaults to stderr
}

// OptionsFromEnv reads MATES_LOG_LEVEL and MATES_LOG_FORMAT, using
// defaultLevel when the level is unset.
func OptionsFromEnv(defaultLevel string) Options {
	opts := Options{Level: defaultLevel, Format: "text"}
	if l := os.Getenv("MATES_LOG_LEVEL"); l != "" {
		opts.Level = l
	}
	if f := os.Getenv("MATES_LOG_FORMAT"); f != "" {
		opts.Format = f
	}
	return opts
}

// Setup applies opts to Logger.
func Setup(opts Options) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	Logger.SetLevel(level)

	switch opts.Format {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	if opts.Output != nil {
		Logger.SetOutput(opts.Output)
	} else {
		Logger.SetOutput(os.Stderr)
	}
	return nil
}

// ToFile redirects Logger to the file at path (appending). The terminal UI
// uses it so log lines never corrupt the screen.
func ToFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Logger.SetOutput(f)
	return f, nil
}

// NewContext returns a copy of ctx carrying log.
func NewContext(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger stored in ctx, or the process logger.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok {
			return l
		}
	}
	return Logger
}
