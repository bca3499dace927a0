// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every fatal condition in a capture run maps to one ErrorCode, which the
// CLI and tests inspect via CodeOf.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeCollectionFailed,
//	    "failed to collect database metrics",
//	    cause,
//	    map[string]interface{}{
//	        "database_type": cfg.DatabaseType,
//	        "phase": "collecting_before",
//	    },
//	)
package errors
