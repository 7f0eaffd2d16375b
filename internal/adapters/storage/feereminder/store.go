package feereminder

import (
	"context"
	"time"

	domain "gymadmin/internal/domain/feereminder"
)

// Store persists Reminder state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Reminder, error)
	Save(ctx context.Context, value domain.Reminder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Reminder, error)
	// ListDue returns Pending reminders whose date has arrived.
	ListDue(ctx context.Context, asOf time.Time) ([]domain.Reminder, error)
	// RolloverPaid creates the next period's Pending reminder for every Paid
	// reminder dated on or before asOf, archiving the originals, all in one
	// transaction. Returns the newly created reminders.
	RolloverPaid(ctx context.Context, asOf time.Time, newID func() string) ([]domain.Reminder, error)
	CountByMemberID(ctx context.Context, memberID string) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
