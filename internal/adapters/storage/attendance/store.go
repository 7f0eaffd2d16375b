package attendance

import (
	"context"

	domain "gymadmin/internal/domain/attendance"
)

// Store persists attendance Record state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Record, error)
	// GetOpenByMemberID returns the member's open record, if one exists.
	// Returns (record, true, nil) when found, (zero, false, nil) when not.
	GetOpenByMemberID(ctx context.Context, memberID string) (domain.Record, bool, error)
	Save(ctx context.Context, value domain.Record) error
	Delete(ctx context.Context, id string) error
	// ListByDate returns records whose check-in falls on the given day,
	// most recent first.
	ListByDate(ctx context.Context, day string) ([]domain.Record, error)
	// List returns records most recent first, for paginated history views.
	List(ctx context.Context, limit, offset int) ([]domain.Record, error)
	Count(ctx context.Context) (int, error)
	CountByMemberID(ctx context.Context, memberID string) (int, error)
	CountByDate(ctx context.Context, day string) (int, error)
}
