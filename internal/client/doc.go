// Package client implements the search-side consumer of the specialist
// search endpoint: the fetcher behind the results view.
//
// # Contract
//
// A Client issues exactly one GET request per search to
// <base>/api/specialists/search?q=<url-encoded query>. There is no retry,
// no backoff, and no timeout beyond the underlying http.Client's. Empty or
// whitespace-only queries are rejected with ErrEmptyQuery before any
// request is made.
//
// Any failure (transport error, non-2xx status, malformed body, or an
// application-level success:false envelope) is recovered locally: the
// returned Result carries a user-visible error message and the injected
// fallback list, so a results view backed by this client is never blank.
// Result.Fallback distinguishes substituted example data from live data so
// the view can say so instead of silently presenting stale records.
//
// # Sessions
//
// A Session serializes searches for a single results view and resolves the
// out-of-order-response race: every search takes a generation number, and a
// response is applied only while its generation is still the newest. A slow
// response to an old query can therefore never overwrite the result of a
// newer one.
package client
