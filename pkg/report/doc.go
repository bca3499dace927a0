// Package report defines the run report emitted after a capture completes.
//
// The report is diagnostic output for the operator, distinct from the four
// uploaded artifacts: it carries the run identity, window boundaries,
// artifact locations with checksums, and the upload outcome.
package report
