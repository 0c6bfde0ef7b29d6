// Package logging provides a minimal logging interface and adapters for agentdesk.
//
// The Logger interface defines the leveled methods (Debug, Info, Warn, Error)
// that the resolver, runner and tools use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging (json / text)
//   - ZerologAdapter for human readable console output
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(&logging.Config{Level: logging.LogLevelDebug, Format: "console"})
//	res := resolver.New(func(o *resolver.Options) { o.Logger = logger })
package logging
