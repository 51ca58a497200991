// Package logging provides component-tagged structured logging for the
// AgriMarket client. Logs go to a file under the user config dir because
// stdout and stderr belong to the TUI while it is running. Until Initialize
// is called (or when it fails) every logger is a silent no-op, so packages
// can log unconditionally.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Initialize opens the log file inside dir and installs the root logger.
// Pass verbose=true to enable debug-level output.
func Initialize(dir string, verbose bool) error {
	if dir == "" {
		return fmt.Errorf("log directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "agrimarket.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// Get returns a sugared logger tagged with the component name.
func Get(component string) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(component).Sugar()
}

// Sync flushes buffered log entries. Called once on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// SetLogger swaps the root logger. Tests use it to capture output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
}
