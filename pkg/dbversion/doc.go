// Package dbversion parses database engine version strings.
//
// Collectors use it to gate version-dependent introspection, such as
// skipping pg_stat_archiver on PostgreSQL releases before 9.4.
package dbversion
