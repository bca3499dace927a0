// Package result persists artifact documents and assembles the finalized
// artifact set handed to the uploader.
//
// Only schema-validated documents can reach the writer: its input type,
// artifact.Document, is constructible solely through validation. The set
// finalizes only when all four artifacts have been written, at which point
// a checksums.txt manifest is emitted beside them.
package result
