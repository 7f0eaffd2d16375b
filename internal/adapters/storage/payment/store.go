package payment

import (
	"context"

	domain "gymadmin/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	Delete(ctx context.Context, id string) error
	// List returns payments, most recent first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.Payment, error)
	Count(ctx context.Context) (int, error)
	CountByMemberID(ctx context.Context, memberID string) (int, error)
	// SumCompletedCents totals all Completed payments.
	SumCompletedCents(ctx context.Context) (int64, error)
}
