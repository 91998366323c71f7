// Package domain defines the core domain types for the Specfinder specialist directory.
//
// This package contains the entities and value objects shared by every layer:
// the Specialist record, query normalization, and the wire envelope used by
// the search API.
//
// # Core Types
//
// Specialist represents one directory entry describing a medical professional
// with specialty, affiliation, location, and contact metadata. Records are
// read-only view models once they leave the repository or arrive from the
// wire; nothing mutates a result set after it is built.
//
// SearchEnvelope is the JSON shape the search endpoint speaks:
// {success, results, error}. A response either carries results or a
// human-readable error message, never both.
//
// # Matching
//
// Search is a deliberate substring filter, not a ranking algorithm.
// MatchesQuery performs case-insensitive containment checks over name,
// specialty, treated conditions, research interests, institution, and
// location. Optional ranking scores on a record are display-only and are
// never recomputed here.
package domain
