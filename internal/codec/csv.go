package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"specfinder/internal/domain"
)

// CSVCodec handles CSV import/export. Conditions are joined with "; " in a
// single column; ranking scores are formatted with full float precision.
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Format returns the codec format identifier
func (c *CSVCodec) Format() string {
	return "csv"
}

var csvHeader = []string{
	"id", "name", "specialty", "institution", "research_interests",
	"conditions", "city", "state", "country", "email", "phone", "website",
}

// Parse imports specialist records from CSV
func (c *CSVCodec) Parse(r io.Reader) ([]domain.Specialist, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < len(csvHeader) {
		return nil, fmt.Errorf("unexpected CSV header: %v", header)
	}

	var specialists []domain.Specialist
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		s := domain.Specialist{
			ID:                record[0],
			Name:              record[1],
			Specialty:         record[2],
			Institution:       record[3],
			ResearchInterests: record[4],
			City:              record[6],
			State:             record[7],
			Country:           record[8],
			Email:             record[9],
			Phone:             record[10],
			Website:           record[11],
		}
		if record[5] != "" {
			for _, cond := range strings.Split(record[5], ";") {
				if cond = strings.TrimSpace(cond); cond != "" {
					s.Conditions = append(s.Conditions, cond)
				}
			}
		}

		specialists = append(specialists, s)
	}

	return specialists, nil
}

// Export exports specialist records to CSV
func (c *CSVCodec) Export(specialists []domain.Specialist, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(append(csvHeader, "relevance_score", "rank_score", "cluster_id")); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range specialists {
		s := &specialists[i]
		record := []string{
			s.ID,
			s.DisplayName(),
			s.Specialty,
			s.Institution,
			s.ResearchInterests,
			strings.Join(s.Conditions, "; "),
			s.City,
			s.State,
			s.Country,
			s.Email,
			s.Phone,
			s.Website,
			formatScore(s.RelevanceScore),
			formatScore(s.RankScore),
			s.ClusterID,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

func formatScore(score *float64) string {
	if score == nil {
		return ""
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
