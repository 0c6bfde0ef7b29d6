package core

import "github.com/hupe1980/agentdesk/logging"

// loggerAdapter wraps a logging.Logger and exposes convenience methods
// (LogDebug/LogInfo/LogWarn/LogError). It guarantees a non-nil logger by
// substituting a NoOpLogger when constructed with nil, and a nil adapter
// (zero-value RunContext) behaves like a NoOpLogger.
type loggerAdapter struct {
	logger logging.Logger
}

// newLoggerAdapter constructs a loggerAdapter with a non-nil logger.
func newLoggerAdapter(l logging.Logger) *loggerAdapter {
	return &loggerAdapter{logger: logging.OrNoOp(l)}
}

// Logger returns the underlying logger.
func (l *loggerAdapter) Logger() logging.Logger {
	if l == nil {
		return logging.NoOpLogger{}
	}
	return l.logger
}

// LogDebug logs a debug message.
func (l *loggerAdapter) LogDebug(msg string, args ...any) {
	l.Logger().Debug(msg, args...)
}

// LogInfo logs an info message.
func (l *loggerAdapter) LogInfo(msg string, args ...any) {
	l.Logger().Info(msg, args...)
}

// LogWarn logs a warning message.
func (l *loggerAdapter) LogWarn(msg string, args ...any) {
	l.Logger().Warn(msg, args...)
}

// LogError logs an error message.
func (l *loggerAdapter) LogError(msg string, args ...any) {
	l.Logger().Error(msg, args...)
}
