// Package config loads and validates the capture run configuration.
//
// The configuration file is JSON with seven required fields: database_type,
// username, password, database_url, upload_code, upload_url, and
// workload_name. Raw bytes are checked against the embedded configuration
// schema before any decoding, and the database type must canonicalize to a
// known engine. The resulting Config value is immutable and owned by the
// controller for the lifetime of the run.
package config
