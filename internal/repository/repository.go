package repository

import (
	"context"

	"specfinder/internal/domain"
)

// Repository defines the interface for specialist directory data access
type Repository interface {
	// Read operations
	Search(ctx context.Context, query string, limit int) ([]domain.Specialist, error)
	Get(ctx context.Context, id string) (*domain.Specialist, error)
	List(ctx context.Context, specialty, country string) ([]domain.Specialist, error)
	ListSpecialties(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)

	// Write operations
	Upsert(ctx context.Context, s *domain.Specialist) error
	Delete(ctx context.Context, id string) error

	// Bulk operations
	ReplaceAll(ctx context.Context, specialists []domain.Specialist) error

	// Close releases resources
	Close() error
}
