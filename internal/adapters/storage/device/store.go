package device

import (
	"context"

	domain "gymadmin/internal/domain/device"
)

// Store persists Device state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Device, error)
	Save(ctx context.Context, value domain.Device) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Device, error)
	// ListActive returns devices currently accepting check-ins.
	ListActive(ctx context.Context) ([]domain.Device, error)
}
