// Package controller sequences one capture run around an externally-driven
// workload.
//
// The run is a linear state machine:
//
//	INIT → COLLECTING_BEFORE → WAITING → COLLECTING_AFTER → SUMMARIZING → COMPLETE
//
// with FAILED terminal from any non-terminal state. The before phase
// snapshots metrics and configuration knobs; the wait models the workload
// window and deliberately performs no monitoring against the target; the
// summary is assembled when the wait closes, using a version string queried
// fresh from the first collector; the after phase uses a second, independent
// collector instance and re-collects metrics only.
//
// Every artifact passes its JSON Schema before it is written, and any
// failure — validation, collection, I/O, or interruption of the wait — is
// fatal at the point it occurs. The uploader is invoked exactly once, only
// when all four artifacts have been finalized.
package controller
