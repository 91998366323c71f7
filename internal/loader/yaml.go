package loader

import (
	"fmt"
	"os"

	"specfinder/internal/domain"

	"gopkg.in/yaml.v3"
)

// DatasetYAML represents the YAML dataset file structure
type DatasetYAML struct {
	Version     string           `yaml:"version"`
	Metadata    *MetadataYAML    `yaml:"metadata,omitempty"`
	Specialists []SpecialistYAML `yaml:"specialists"`
}

// MetadataYAML represents the optional metadata section
type MetadataYAML struct {
	Description string `yaml:"description,omitempty"`
	Source      string `yaml:"source,omitempty"`
	LastUpdated string `yaml:"last_updated,omitempty"`
}

// SpecialistYAML represents one specialist in YAML format
type SpecialistYAML struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name,omitempty"`
	FirstName string `yaml:"first_name,omitempty"`
	LastName  string `yaml:"last_name,omitempty"`

	Specialty         string   `yaml:"specialty"`
	Institution       string   `yaml:"institution,omitempty"`
	ResearchInterests string   `yaml:"research_interests,omitempty"`
	Conditions        []string `yaml:"conditions,omitempty"`

	City    string `yaml:"city,omitempty"`
	State   string `yaml:"state,omitempty"`
	Country string `yaml:"country,omitempty"`

	Email   string `yaml:"email,omitempty"`
	Phone   string `yaml:"phone,omitempty"`
	Website string `yaml:"website,omitempty"`

	RelevanceScore *float64 `yaml:"relevance_score,omitempty"`
	RankScore      *float64 `yaml:"rank_score,omitempty"`
	ClusterID      string   `yaml:"cluster_id,omitempty"`
}

// LoadYAML loads a specialist dataset from a YAML file
func LoadYAML(path string) ([]domain.Specialist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses a specialist dataset from YAML bytes
func ParseYAML(data []byte) ([]domain.Specialist, error) {
	var yamlData DatasetYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToSpecialists(&yamlData)
}

func convertYAMLToSpecialists(y *DatasetYAML) ([]domain.Specialist, error) {
	specialists := make([]domain.Specialist, 0, len(y.Specialists))

	seen := make(map[string]bool, len(y.Specialists))
	for i, sy := range y.Specialists {
		if sy.ID == "" {
			return nil, fmt.Errorf("specialist %d: id required", i)
		}
		if seen[sy.ID] {
			return nil, fmt.Errorf("specialist %d: duplicate id %q", i, sy.ID)
		}
		seen[sy.ID] = true

		specialists = append(specialists, domain.Specialist{
			ID:                sy.ID,
			Name:              sy.Name,
			FirstName:         sy.FirstName,
			LastName:          sy.LastName,
			Specialty:         sy.Specialty,
			Institution:       sy.Institution,
			ResearchInterests: sy.ResearchInterests,
			Conditions:        sy.Conditions,
			City:              sy.City,
			State:             sy.State,
			Country:           sy.Country,
			Email:             sy.Email,
			Phone:             sy.Phone,
			Website:           sy.Website,
			RelevanceScore:    sy.RelevanceScore,
			RankScore:         sy.RankScore,
			ClusterID:         sy.ClusterID,
		})
	}

	return specialists, nil
}
