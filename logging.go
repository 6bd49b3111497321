package riff

import (
	"sync"

	"go.uber.org/zap"
)

// logging.go wires the package into go.uber.org/zap the way cmd/server
// does in the teacher repo, but defaults to a fully silent logger so
// importing this module never forces a logging configuration on the
// caller. Callers that want diagnostics call SetLogger once at startup.

var (
	logMu  sync.RWMutex
	logger *zap.SugaredLogger = zap.NewNop().Sugar()
)

// SetLogger replaces the package-level logger. Passing nil restores the
// silent default.
func SetLogger(l *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

func currentLogger() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// Logger returns the package-level logger, for components (such as
// internal/planner) that need to log outside the root package but share
// the same SetLogger configuration.
func Logger() *zap.SugaredLogger {
	return currentLogger()
}
