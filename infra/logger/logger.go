package logger

import corelogger "github.com/mbrivio/turni/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component, built with the settings last
// passed to Configure.
func New(component string) Logger {
	return NewZerologLogger(component)
}
