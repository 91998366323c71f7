package codec

import (
	"io"

	"specfinder/internal/domain"
)

// Importer interface for importing specialist records from various formats
type Importer interface {
	Parse(r io.Reader) ([]domain.Specialist, error)
	Format() string
}

// Exporter interface for exporting specialist records to various formats
type Exporter interface {
	Export(specialists []domain.Specialist, w io.Writer) error
	Format() string
}
