// Package artifact defines the documents a capture run produces.
//
// A run yields four artifacts: a knobs snapshot, metrics snapshots taken
// before and after the observation window, and a derived summary. The
// Document type is the validity boundary: it can only be constructed
// through NewDocument, which renders the payload and checks it against the
// JSON Schema for its kind. Downstream code that holds a Document can rely
// on it being schema-valid.
package artifact
