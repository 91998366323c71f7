package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"specfinder/internal/codec"
	"specfinder/internal/domain"
	"specfinder/internal/loader"
	"specfinder/internal/repository"
)

// ErrEmptyQuery is returned when a search query is empty after trimming.
var ErrEmptyQuery = errors.New("empty search query")

// DefaultSearchLimit caps result sets when the caller does not specify one.
const DefaultSearchLimit = 50

// MaxSearchLimit is the hard server-side cap on a single result set.
const MaxSearchLimit = 200

// DirectoryService provides business logic for the specialist directory
type DirectoryService struct {
	repo     repository.Repository
	eventBus *EventBus
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(repo repository.Repository, eventBus *EventBus) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// Search runs a free-text lookup over the directory. The query is trimmed
// first; an empty query returns ErrEmptyQuery without touching the store.
// Results come back in repository order, capped at limit.
func (s *DirectoryService) Search(ctx context.Context, query string, limit int) ([]domain.Specialist, error) {
	q := domain.NormalizeQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	results, err := s.repo.Search(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventSearchPerformed,
		Payload: map[string]interface{}{"query": q, "total": len(results)},
	})

	return results, nil
}

// GetSpecialist retrieves a single specialist by ID
func (s *DirectoryService) GetSpecialist(ctx context.Context, id string) (*domain.Specialist, error) {
	spec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, fmt.Errorf("specialist %s not found", id)
	}
	return spec, nil
}

// ListSpecialists returns all specialists, optionally filtered
func (s *DirectoryService) ListSpecialists(ctx context.Context, specialty, country string) ([]domain.Specialist, error) {
	return s.repo.List(ctx, specialty, country)
}

// ListSpecialties returns the distinct specialty labels in the directory
func (s *DirectoryService) ListSpecialties(ctx context.Context) ([]string, error) {
	return s.repo.ListSpecialties(ctx)
}

// Count returns the number of specialists in the directory
func (s *DirectoryService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// CreateSpecialist validates and stores a new specialist record
func (s *DirectoryService) CreateSpecialist(ctx context.Context, spec *domain.Specialist) error {
	if spec.ID == "" {
		spec.ID = domain.NewSpecialist(spec.Name, spec.Specialty).ID
	}
	if err := s.validateSpecialist(spec); err != nil {
		return err
	}

	existing, err := s.repo.Get(ctx, spec.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("specialist %s already exists", spec.ID)
	}

	if err := s.repo.Upsert(ctx, spec); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventSpecialistCreated,
		Payload: map[string]string{"id": spec.ID, "specialty": spec.Specialty},
	})

	return nil
}

// UpdateSpecialist validates and overwrites an existing specialist record
func (s *DirectoryService) UpdateSpecialist(ctx context.Context, spec *domain.Specialist) error {
	if err := s.validateSpecialist(spec); err != nil {
		return err
	}

	existing, err := s.repo.Get(ctx, spec.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("specialist %s not found", spec.ID)
	}

	if err := s.repo.Upsert(ctx, spec); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventSpecialistUpdated,
		Payload: map[string]string{"id": spec.ID},
	})

	return nil
}

// DeleteSpecialist removes a specialist record
func (s *DirectoryService) DeleteSpecialist(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventSpecialistDeleted,
		Payload: map[string]string{"id": id},
	})

	return nil
}

// ImportResult represents the result of a dataset import
type ImportResult struct {
	Imported int    `json:"imported"`
	Source   string `json:"source"`
}

// ImportYAML replaces the directory with a YAML dataset
func (s *DirectoryService) ImportYAML(ctx context.Context, data []byte) (*ImportResult, error) {
	specialists, err := loader.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
	}

	return s.importDataset(ctx, specialists, "yaml")
}

// ImportJSON replaces the directory with a JSON dataset
func (s *DirectoryService) ImportJSON(ctx context.Context, data []byte) (*ImportResult, error) {
	c := codec.NewJSONCodec()
	specialists, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON dataset: %w", err)
	}

	return s.importDataset(ctx, specialists, "json")
}

func (s *DirectoryService) importDataset(ctx context.Context, specialists []domain.Specialist, source string) (*ImportResult, error) {
	for i := range specialists {
		if err := s.validateSpecialist(&specialists[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if err := s.repo.ReplaceAll(ctx, specialists); err != nil {
		return nil, err
	}

	result := &ImportResult{Imported: len(specialists), Source: source}

	s.eventBus.Publish(Event{
		Type:    EventDatasetReloaded,
		Payload: result,
	})

	return result, nil
}

// ExportJSON writes the full directory as JSON
func (s *DirectoryService) ExportJSON(ctx context.Context) ([]byte, error) {
	specialists, err := s.repo.List(ctx, "", "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	c := codec.NewJSONCodec()
	if err := c.Export(specialists, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportYAML writes the full directory as YAML
func (s *DirectoryService) ExportYAML(ctx context.Context, w io.Writer) error {
	specialists, err := s.repo.List(ctx, "", "")
	if err != nil {
		return err
	}

	c := codec.NewYAMLCodec()
	return c.Export(specialists, w)
}

// ExportCSV writes the full directory as CSV
func (s *DirectoryService) ExportCSV(ctx context.Context, w io.Writer) error {
	specialists, err := s.repo.List(ctx, "", "")
	if err != nil {
		return err
	}

	c := codec.NewCSVCodec()
	return c.Export(specialists, w)
}

// Validation helpers

func (s *DirectoryService) validateSpecialist(spec *domain.Specialist) error {
	if spec.ID == "" {
		return fmt.Errorf("specialist ID required")
	}
	if spec.DisplayName() == "" {
		return fmt.Errorf("specialist name required")
	}
	if spec.Specialty == "" {
		return fmt.Errorf("specialist specialty required")
	}
	return nil
}
