// Package observability provides the structured logger shared by the engine and CLI.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/percentile/internal/config"
)

// ServiceName is attached to every log entry built by NewLogger.
const ServiceName = "percentile"

// NewLogger creates a structured logger from the given logging configuration
// that writes to sink. The CLI passes stderr so YAML on stdout stays clean.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console"; sink must be non-nil.
// Postcondition: Returns a zap.Logger carrying a "service" field, or a non-nil error.
func NewLogger(cfg config.LoggingConfig, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var enc zapcore.Encoder
	opts := []zap.Option{zap.Fields(zap.String("service", ServiceName))}
	switch cfg.Format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	case "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewConsoleEncoder(ec)
		opts = append(opts, zap.AddCaller(), zap.Development())
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level))
	return zap.New(core, opts...), nil
}
