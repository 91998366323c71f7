// Package handler implements the HTTP layer of specfinder.
//
// DirectoryHandler serves the JSON API: specialist search, CRUD, specialty
// listing, and dataset import/export. PageHandler serves the server-rendered
// search and results pages, fetching results through the search client so
// the pages share its fallback behavior.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - PUT for updates
// - DELETE for removal
//
// The search endpoint responds with a {success, results, error} envelope;
// other endpoints return JSON data on success and an {error, details}
// structure on failure.
//
// Middleware provides request logging, panic recovery, and CORS support.
package handler
