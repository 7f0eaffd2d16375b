package member

import (
	"context"

	"gymadmin/internal/domain/feereminder"
	domain "gymadmin/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	// CreateWithInitialReminder inserts a new member together with its first
	// fee reminder in one transaction; either both rows land or neither.
	CreateWithInitialReminder(ctx context.Context, value domain.Member, reminder feereminder.Reminder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit          int
	Offset         int
	MembershipType string
	Status         string
	Search         string
	Sort           string
	Dir            string
}
