// Package repository defines the data access interfaces for Specfinder.
//
// This package provides the repository abstraction layer for persisting
// and retrieving specialist records. The actual implementation is in the
// sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface defines all data access methods for the
// specialist directory: substring search, single-record lookup, filtered
// listing, distinct specialty enumeration, upserts, and transactional
// dataset replacement.
//
// # SQLite Implementation
//
// The sqlite implementation stores each record twice over: frequently
// queried fields as indexed columns and the full record as a JSON column,
// with treated conditions in a join table for per-condition matching.
// The schema is migrated automatically on open.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases so tests
// never touch the filesystem.
package repository
