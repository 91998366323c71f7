package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Specialist represents one directory entry for a medical professional.
//
// All fields except ID, Name, and Specialty are optional and independently
// absent. Renderers must treat missing fields as "not provided" rather than
// assuming presence.
type Specialist struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`

	Specialty         string   `json:"specialty" yaml:"specialty"`
	Institution       string   `json:"institution,omitempty" yaml:"institution,omitempty"`
	ResearchInterests string   `json:"research_interests,omitempty" yaml:"research_interests,omitempty"`
	Conditions        []string `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website string `json:"website,omitempty" yaml:"website,omitempty"`

	// Display-only ranking metadata, computed upstream and never
	// recalculated by this application.
	RelevanceScore *float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`
	RankScore      *float64 `json:"rank_score,omitempty" yaml:"rank_score,omitempty"`
	ClusterID      string   `json:"cluster_id,omitempty" yaml:"cluster_id,omitempty"`
}

// NewSpecialist creates a specialist with a generated ID.
func NewSpecialist(name, specialty string) *Specialist {
	return &Specialist{
		ID:        uuid.NewString(),
		Name:      name,
		Specialty: specialty,
	}
}

// DisplayName returns the name to render: the composed display name when
// present, otherwise "First Last" from the decomposed fields.
func (s *Specialist) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Location joins the non-empty location parts with ", ".
// e.g. City="Sherbrooke", State="Quebec", Country="Canada" renders as
// "Sherbrooke, Quebec, Canada"; absent parts are simply omitted.
func (s *Specialist) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.City, s.State, s.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HasContact reports whether any contact field is present.
func (s *Specialist) HasContact() bool {
	return s.Email != "" || s.Phone != "" || s.Website != ""
}

// MatchesQuery reports whether the record matches a free-text query using
// case-insensitive substring containment. The query is expected to be
// normalized (trimmed, non-empty) by the caller.
func (s *Specialist) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return false
	}

	fields := []string{
		s.DisplayName(),
		s.Specialty,
		s.ResearchInterests,
		s.Institution,
		s.City,
		s.State,
		s.Country,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, cond := range s.Conditions {
		if strings.Contains(strings.ToLower(cond), q) {
			return true
		}
	}
	return false
}
