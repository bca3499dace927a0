// Package defaults centralizes default durations and limits used across
// Metron components.
//
// Keeping these values in one place makes the relationships between them
// visible: the collector connect timeout must stay well under the query
// timeout, and upload retry backoff must fit inside the HTTP client timeout.
package defaults
