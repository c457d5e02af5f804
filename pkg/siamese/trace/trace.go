// Package trace builds the diagnostic loggers used across the engine.
// Tracing is purely observational: nothing here affects resolution.
package trace

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/siamese/pkg/siamese/internalerr"
)

// New returns a production-config logger at the given verbosity level:
// debug, info, warn or error.
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("%w: unknown log level %q", internalerr.ErrInvalidConfig, level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

// QueryID mints a ULID identifying one query's trace records. Safe for
// concurrent use.
func QueryID() string {
	return ulid.Make().String()
}
