package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"specfinder/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports specialist records from JSON
func (c *JSONCodec) Parse(r io.Reader) ([]domain.Specialist, error) {
	var specialists []domain.Specialist
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&specialists); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return specialists, nil
}

// Export exports specialist records to JSON
func (c *JSONCodec) Export(specialists []domain.Specialist, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(specialists); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
