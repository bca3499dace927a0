// Package schema gates every document Metron reads or writes.
//
// Three JSON Schemas are embedded in the binary: one for the run
// configuration file, one for collector output snapshots (knobs and
// metrics), and one for the run summary. Validation happens on raw bytes
// before any decoding, so a document that fails its schema is rejected
// before it can influence a run.
package schema
