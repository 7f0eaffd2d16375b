package fitnessclass

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName       = errors.New("class name cannot be empty")
	ErrEmptyInstructor = errors.New("instructor cannot be empty")
	ErrNoSchedule      = errors.New("class schedule must be set")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

// FitnessClass holds state for a scheduled group class.
type FitnessClass struct {
	ID              string
	Name            string
	Description     string
	Instructor      string
	Schedule        time.Time
	DurationMinutes int
	Capacity        int
}

// Validate checks if the FitnessClass has valid data.
// PRE: FitnessClass struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *FitnessClass) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("class name cannot exceed 100 characters")
	}
	if strings.TrimSpace(c.Instructor) == "" {
		return ErrEmptyInstructor
	}
	if c.Schedule.IsZero() {
		return ErrNoSchedule
	}
	if c.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// EndTime returns the scheduled end of the class.
// INVARIANT: FitnessClass fields are not mutated
func (c *FitnessClass) EndTime() time.Time {
	return c.Schedule.Add(time.Duration(c.DurationMinutes) * time.Minute)
}
