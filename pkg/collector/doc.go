// Package collector defines the database collector contract and the
// factory that maps a configured database type to a concrete variant.
//
// Variants live in subpackages, one per engine: postgres, mysql, and
// saphana. Each implements the same three read-only operations against a
// different introspection surface. Selection is by declared type only;
// nothing is auto-detected from the target.
//
// Collectors are cheap to create and scoped to a single collection phase.
// The capture controller obtains one instance for the before phase and a
// second, independent instance for the after phase, so no connection state
// crosses the observation window.
package collector
