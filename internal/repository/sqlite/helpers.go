package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"specfinder/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSpecialist reads one specialist row: the JSON data column carries the
// full record, the indexed columns are the source of truth where they overlap.
func scanSpecialist(row rowScanner) (*domain.Specialist, error) {
	var (
		id, name, specialty  string
		institution, country sql.NullString
		data                 []byte
	)

	if err := row.Scan(&id, &name, &specialty, &institution, &country, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan specialist: %w", err)
	}

	s := &domain.Specialist{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal specialist data: %w", err)
	}

	s.ID = id
	s.Specialty = specialty
	if s.Name == "" {
		s.Name = name
	}
	if institution.Valid {
		s.Institution = institution.String
	}
	if country.Valid {
		s.Country = country.String
	}

	return s, nil
}

// stringToNull converts an empty string to a SQL NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullToString converts a SQL NULL to an empty string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
