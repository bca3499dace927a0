// Package logging provides structured logging utilities for Metron components.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, module and version context on every record, and
// environment-based level configuration via LOG_LEVEL. Debug level adds
// source location tracking.
//
// Usage:
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("metron", version, "info")
//
//	    slog.Info("starting capture", "database_type", cfg.DatabaseType)
//	    slog.Error("collection failed", "error", err)
//	}
//
// Supported log levels (case-insensitive): DEBUG, INFO (default),
// WARN/WARNING, ERROR.
package logging
