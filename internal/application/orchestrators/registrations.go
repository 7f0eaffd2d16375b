package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/fitnessclass"
	"gymadmin/internal/domain/registration"
)

// RegistrationStoreForWrite defines the store interface needed by registration orchestrators.
type RegistrationStoreForWrite interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	GetByMemberAndClass(ctx context.Context, memberID, classID string) (registration.Registration, error)
	Save(ctx context.Context, r registration.Registration) error
	Delete(ctx context.Context, id string) error
	CountByClassID(ctx context.Context, classID string) (int, error)
}

// ClassLookup resolves a class by ID.
type ClassLookup interface {
	GetByID(ctx context.Context, id string) (fitnessclass.FitnessClass, error)
}

var (
	ErrAlreadyRegistered = errors.New("member is already registered for this class")
	ErrClassFull         = errors.New("class is at capacity")
)

// RegisterClassInput carries input for registering a member to a class.
type RegisterClassInput struct {
	MemberID string
	ClassID  string
}

// RegisterClassDeps holds dependencies for RegisterClass.
type RegisterClassDeps struct {
	RegistrationStore RegistrationStoreForWrite
	MemberStore       MemberLookup
	ClassStore        ClassLookup
	NewID             func() string
	Now               func() time.Time
}

// ExecuteRegisterClass registers a member for a fitness class.
// PRE: Member and class exist
// INVARIANT: A member registers for a given class at most once; class
// capacity is never exceeded
func ExecuteRegisterClass(ctx context.Context, input RegisterClassInput, deps RegisterClassDeps) (registration.Registration, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("member not found: %w", err)
	}
	c, err := deps.ClassStore.GetByID(ctx, input.ClassID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("class not found: %w", err)
	}

	if _, err := deps.RegistrationStore.GetByMemberAndClass(ctx, m.ID, c.ID); err == nil {
		return registration.Registration{}, ErrAlreadyRegistered
	}

	if c.Capacity > 0 {
		n, err := deps.RegistrationStore.CountByClassID(ctx, c.ID)
		if err != nil {
			return registration.Registration{}, fmt.Errorf("failed to count registrations: %w", err)
		}
		if n >= c.Capacity {
			return registration.Registration{}, ErrClassFull
		}
	}

	r := registration.Registration{
		ID:               deps.NewID(),
		MemberID:         m.ID,
		ClassID:          c.ID,
		RegistrationDate: deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return registration.Registration{}, err
	}
	if err := deps.RegistrationStore.Save(ctx, r); err != nil {
		return registration.Registration{}, fmt.Errorf("failed to save registration: %w", err)
	}

	slog.Info("registration_event", "event", "member_registered", "member_id", m.ID, "class_id", c.ID)
	return r, nil
}

// DeleteRegistrationInput carries input for removing a registration.
type DeleteRegistrationInput struct {
	RegistrationID string
}

// DeleteRegistrationDeps holds dependencies for DeleteRegistration.
type DeleteRegistrationDeps struct {
	RegistrationStore RegistrationStoreForWrite
}

// ExecuteDeleteRegistration removes a class registration.
func ExecuteDeleteRegistration(ctx context.Context, input DeleteRegistrationInput, deps DeleteRegistrationDeps) error {
	r, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return fmt.Errorf("registration not found: %w", err)
	}

	if err := deps.RegistrationStore.Delete(ctx, r.ID); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	slog.Info("registration_event", "event", "registration_deleted", "member_id", r.MemberID, "class_id", r.ClassID)
	return nil
}
