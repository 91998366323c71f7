package client

import (
	"specfinder/internal/domain"
	"specfinder/internal/loader"
)

// DefaultFallback returns the built-in example list substituted when a
// search fails. The records are illustrative, not live directory data.
func DefaultFallback() []domain.Specialist {
	return []domain.Specialist{
		{
			ID:          "fallback-1",
			Name:        "Dr. Alice Nguyen",
			Specialty:   "Genetics",
			Institution: "Central University Hospital",
			Email:       "alice.nguyen@example.org",
			Phone:       "555-0101",
			Conditions:  []string{"Fabry disease", "Gaucher disease"},
		},
		{
			ID:          "fallback-2",
			Name:        "Dr. Ben Carter",
			Specialty:   "Neurology",
			Institution: "Westside Medical",
			Email:       "ben.carter@example.org",
			Phone:       "555-0102",
			Conditions:  []string{"Wilson disease", "Huntington disease"},
		},
		{
			ID:          "fallback-3",
			Name:        "Dr. Chen Li",
			Specialty:   "Metabolic Disorders",
			Institution: "Children's Research Clinic",
			Email:       "chen.li@example.org",
			Phone:       "555-0103",
			Conditions:  []string{"Phenylketonuria", "Maple syrup urine disease"},
		},
		{
			ID:          "fallback-4",
			Name:        "Dr. Dana Smith",
			Specialty:   "Rheumatology",
			Institution: "North Medical Center",
			Email:       "dana.smith@example.org",
			Phone:       "555-0104",
			Conditions:  []string{"Ehlers-Danlos syndrome", "Marfan syndrome"},
		},
	}
}

// LoadFallback reads a replacement fallback list from a YAML dataset file.
func LoadFallback(path string) ([]domain.Specialist, error) {
	return loader.LoadYAML(path)
}
