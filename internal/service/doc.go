// Package service implements business logic for the Specfinder application.
//
// This package provides the service layer that coordinates between the HTTP
// handlers and the repository, implementing validation, query normalization,
// result limits, and event publishing.
//
// # Services
//
// DirectoryService manages the specialist directory: free-text search,
// record CRUD, distinct-specialty listing, and dataset import/export via
// the loader and codec packages.
//
// # Event System
//
// The service publishes events via EventBus for real-time updates to
// connected clients over Server-Sent Events (SSE). Event types cover
// searches, record mutations, and dataset reloads.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Event-driven for real-time updates
package service
