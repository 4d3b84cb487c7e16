// Package logging configures the process-wide zap logger.
//
// Everything goes to stderr: stdout carries the MCP stdio transport
// and must stay clean. Packages fetch the shared logger through L()
// so tests run silently against the default no-op logger.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Setup builds the stderr console logger at the given level and
// installs it as the shared logger. Level accepts zap's names
// ("debug", "info", "warn", "error"); empty defaults to info.
func Setup(level string) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// L returns the shared logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = L().Sync()
}
