// Package logging sets up the wire-level debug logger.
//
// The CoSoft API's contract is informal, so being able to see exactly what
// the cart and payment endpoints returned is the main debugging tool when a
// booking misbehaves. When enabled (COWORK_DEBUG=1 or --debug), request and
// response summaries are appended as structured JSON lines to the configured
// debug log file; otherwise a nop logger is returned so callers never have
// to branch.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Enabled reports whether debug logging was requested via the environment.
func Enabled() bool {
	return os.Getenv("COWORK_DEBUG") == "1"
}

// New returns a logger appending to the given file, or a nop logger when
// enabled is false. The file and its directory are created on demand.
func New(path string, enabled bool) (*zap.Logger, error) {
	if !enabled {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
