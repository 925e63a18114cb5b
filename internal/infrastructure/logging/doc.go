// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Log Levels:
//   - Debug: Verbose diagnostics (rejected permission queries, raw probe errors)
//   - Info: General informational messages
//   - Warn: Warning messages
//   - Error: Error messages
//   - Fatal: Fatal errors (exits process)
//
// Diagnostics logged here never feed back into control flow: permission and
// probe failures are converted into state by their owners, and the log line
// is strictly observational.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Gateway starting", zap.String("port", "8000"))
//	logger.Error("Probe failed", zap.Error(err))
package logging
