package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"specfinder/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens or creates a SQLite repository at the given path
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite does not support concurrent writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000; PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS specialists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL,
		institution TEXT,
		country TEXT,
		data JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS specialist_conditions (
		specialist_id TEXT NOT NULL,
		condition TEXT NOT NULL,
		PRIMARY KEY (specialist_id, condition),
		FOREIGN KEY (specialist_id) REFERENCES specialists(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_specialists_specialty ON specialists(specialty);
	CREATE INDEX IF NOT EXISTS idx_specialists_country ON specialists(country);
	CREATE INDEX IF NOT EXISTS idx_conditions_condition ON specialist_conditions(condition);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Search returns specialists matching a free-text query, in insertion order.
//
// Matching happens in domain.MatchesQuery over the scanned rows rather
// than in SQL: SQLite's lower() folds only ASCII, so a SQL prefilter
// would drop rows a mixed-case non-ASCII query is entitled to. The table
// stays small enough that a full scan is fine.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]domain.Specialist, error) {
	q := domain.NormalizeQuery(query)
	if q == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, specialty, institution, country, data
		FROM specialists
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query specialists: %w", err)
	}
	defer rows.Close()

	var results []domain.Specialist
	for rows.Next() {
		s, err := scanSpecialist(rows)
		if err != nil {
			return nil, err
		}
		if !s.MatchesQuery(q) {
			continue
		}
		results = append(results, *s)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating specialists: %w", err)
	}

	return results, nil
}

// Get retrieves a single specialist by ID. Returns nil, nil when absent.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Specialist, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, specialty, institution, country, data
		FROM specialists WHERE id = ?
	`, id)

	s, err := scanSpecialist(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns all specialists, optionally filtered by exact specialty
// and/or country.
func (r *Repository) List(ctx context.Context, specialty, country string) ([]domain.Specialist, error) {
	query := `
		SELECT id, name, specialty, institution, country, data
		FROM specialists WHERE 1=1
	`
	args := []interface{}{}

	if specialty != "" {
		query += " AND specialty = ?"
		args = append(args, specialty)
	}
	if country != "" {
		query += " AND country = ?"
		args = append(args, country)
	}
	query += " ORDER BY rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query specialists: %w", err)
	}
	defer rows.Close()

	var results []domain.Specialist
	for rows.Next() {
		s, err := scanSpecialist(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating specialists: %w", err)
	}

	return results, nil
}

// ListSpecialties returns the distinct specialty labels in the directory.
func (r *Repository) ListSpecialties(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT specialty FROM specialists ORDER BY specialty
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query specialties: %w", err)
	}
	defer rows.Close()

	var specialties []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan specialty: %w", err)
		}
		specialties = append(specialties, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating specialties: %w", err)
	}

	return specialties, nil
}

// Count returns the number of specialists in the directory.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM specialists`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count specialists: %w", err)
	}
	return n, nil
}

// Upsert inserts or updates a specialist
func (r *Repository) Upsert(ctx context.Context, s *domain.Specialist) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal specialist: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO specialists (id, name, specialty, institution, country, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			specialty = excluded.specialty,
			institution = excluded.institution,
			country = excluded.country,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, s.ID, s.DisplayName(), s.Specialty, stringToNull(s.Institution), stringToNull(s.Country), data)
	if err != nil {
		return fmt.Errorf("failed to upsert specialist: %w", err)
	}

	if err := r.updateConditions(ctx, s.ID, s.Conditions); err != nil {
		return fmt.Errorf("failed to update conditions: %w", err)
	}

	return nil
}

func (r *Repository) updateConditions(ctx context.Context, specialistID string, conditions []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM specialist_conditions WHERE specialist_id = ?`, specialistID); err != nil {
		return err
	}

	if len(conditions) == 0 {
		return nil
	}

	stmt, err := r.db.PrepareContext(ctx, `INSERT INTO specialist_conditions (specialist_id, condition) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cond := range conditions {
		if _, err := stmt.ExecContext(ctx, specialistID, cond); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a specialist; its condition rows go with it via CASCADE.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM specialists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete specialist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("specialist %s not found", id)
	}
	return nil
}

// ReplaceAll replaces the entire directory with the provided records in a
// single transaction. Used by dataset imports.
func (r *Repository) ReplaceAll(ctx context.Context, specialists []domain.Specialist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Order matters due to foreign keys
	if _, err := tx.ExecContext(ctx, `DELETE FROM specialist_conditions`); err != nil {
		return fmt.Errorf("failed to clear conditions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM specialists`); err != nil {
		return fmt.Errorf("failed to clear specialists: %w", err)
	}

	specStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO specialists (id, name, specialty, institution, country, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare specialist statement: %w", err)
	}
	defer specStmt.Close()

	condStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO specialist_conditions (specialist_id, condition) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare condition statement: %w", err)
	}
	defer condStmt.Close()

	for i := range specialists {
		s := &specialists[i]
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal specialist %s: %w", s.ID, err)
		}

		if _, err := specStmt.ExecContext(ctx, s.ID, s.DisplayName(), s.Specialty, stringToNull(s.Institution), stringToNull(s.Country), data); err != nil {
			return fmt.Errorf("failed to insert specialist %s: %w", s.ID, err)
		}

		for _, cond := range s.Conditions {
			if _, err := condStmt.ExecContext(ctx, s.ID, cond); err != nil {
				return fmt.Errorf("failed to insert condition for %s: %w", s.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
