package registration

import (
	"context"

	domain "gymadmin/internal/domain/registration"
)

// Store persists Registration state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	// GetByMemberAndClass is the duplicate-registration pre-check.
	GetByMemberAndClass(ctx context.Context, memberID, classID string) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Registration, error)
	CountByMemberID(ctx context.Context, memberID string) (int, error)
	CountByClassID(ctx context.Context, classID string) (int, error)
}
