package domain

import "strings"

// NormalizeQuery trims surrounding whitespace from a raw query string.
// An empty result means the query is a no-op and no lookup should run.
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

// SearchEnvelope is the wire shape of the search endpoint response.
//
// Success responses carry the matched records; failure responses carry a
// human-readable error message. Total duplicates len(Results) so clients
// can show a count without materializing the list first.
type SearchEnvelope struct {
	Success bool         `json:"success"`
	Results []Specialist `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
	Query   string       `json:"query,omitempty"`
	Total   int          `json:"total"`
}

// OKEnvelope builds a success envelope for a result set.
func OKEnvelope(query string, results []Specialist) SearchEnvelope {
	return SearchEnvelope{
		Success: true,
		Results: results,
		Query:   query,
		Total:   len(results),
	}
}

// ErrorEnvelope builds a failure envelope with a message.
func ErrorEnvelope(msg string) SearchEnvelope {
	return SearchEnvelope{Success: false, Error: msg}
}
