package codec

import (
	"fmt"
	"io"

	"specfinder/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument wraps the record list so exports round-trip through the
// loader's dataset format.
type yamlDocument struct {
	Version     string              `yaml:"version"`
	Specialists []domain.Specialist `yaml:"specialists"`
}

// Parse imports specialist records from YAML
func (c *YAMLCodec) Parse(r io.Reader) ([]domain.Specialist, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML: %w", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return doc.Specialists, nil
}

// Export exports specialist records to YAML
func (c *YAMLCodec) Export(specialists []domain.Specialist, w io.Writer) error {
	doc := yamlDocument{
		Version:     "1",
		Specialists: specialists,
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
