package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/fitnessclass"
)

// ClassStoreForWrite defines the store interface needed by class orchestrators.
type ClassStoreForWrite interface {
	GetByID(ctx context.Context, id string) (fitnessclass.FitnessClass, error)
	Save(ctx context.Context, c fitnessclass.FitnessClass) error
	Delete(ctx context.Context, id string) error
}

// ClassRegistrationCounter counts registrations for a class.
type ClassRegistrationCounter interface {
	CountByClassID(ctx context.Context, classID string) (int, error)
}

var ErrClassHasRegistrations = errors.New("class has registered members and cannot be deleted")

// SaveClassInput carries input for creating or updating a class.
type SaveClassInput struct {
	ClassID         string // empty when creating
	Name            string
	Description     string
	Instructor      string
	Schedule        time.Time
	DurationMinutes int
	Capacity        int
}

// SaveClassDeps holds dependencies for SaveClass.
type SaveClassDeps struct {
	ClassStore ClassStoreForWrite
	NewID      func() string
}

// ExecuteSaveClass creates a new class or updates an existing one.
// PRE: Input passes domain validation; ClassID, if set, exists
// POST: Class row reflects the input
func ExecuteSaveClass(ctx context.Context, input SaveClassInput, deps SaveClassDeps) (fitnessclass.FitnessClass, error) {
	c := fitnessclass.FitnessClass{
		ID:              input.ClassID,
		Name:            input.Name,
		Description:     input.Description,
		Instructor:      input.Instructor,
		Schedule:        input.Schedule,
		DurationMinutes: input.DurationMinutes,
		Capacity:        input.Capacity,
	}

	event := "class_updated"
	if c.ID == "" {
		c.ID = deps.NewID()
		event = "class_created"
	} else if _, err := deps.ClassStore.GetByID(ctx, c.ID); err != nil {
		return fitnessclass.FitnessClass{}, fmt.Errorf("class not found: %w", err)
	}

	if err := c.Validate(); err != nil {
		return fitnessclass.FitnessClass{}, err
	}
	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return fitnessclass.FitnessClass{}, fmt.Errorf("failed to save class: %w", err)
	}

	slog.Info("class_event", "event", event, "class_id", c.ID, "name", c.Name)
	return c, nil
}

// DeleteClassInput carries input for deleting a class.
type DeleteClassInput struct {
	ClassID string
}

// DeleteClassDeps holds dependencies for DeleteClass.
type DeleteClassDeps struct {
	ClassStore          ClassStoreForWrite
	RegistrationCounter ClassRegistrationCounter
}

// ExecuteDeleteClass removes a class with no registrations.
// INVARIANT: Classes with registered members are never deleted
func ExecuteDeleteClass(ctx context.Context, input DeleteClassInput, deps DeleteClassDeps) error {
	c, err := deps.ClassStore.GetByID(ctx, input.ClassID)
	if err != nil {
		return fmt.Errorf("class not found: %w", err)
	}

	n, err := deps.RegistrationCounter.CountByClassID(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to count registrations: %w", err)
	}
	if n > 0 {
		return ErrClassHasRegistrations
	}

	if err := deps.ClassStore.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	slog.Info("class_event", "event", "class_deleted", "class_id", c.ID, "name", c.Name)
	return nil
}
