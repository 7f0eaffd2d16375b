package fitnessclass

import (
	"context"

	domain "gymadmin/internal/domain/fitnessclass"
)

// Store persists FitnessClass state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.FitnessClass, error)
	Save(ctx context.Context, value domain.FitnessClass) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.FitnessClass, error)
	Count(ctx context.Context) (int, error)
}
