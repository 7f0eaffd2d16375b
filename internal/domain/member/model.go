package member

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 50
	MaxEmailLength = 100
)

// Membership status constants
const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusSuspended = "Suspended"
)

// ValidStatuses contains all valid membership status values.
var ValidStatuses = []string{StatusActive, StatusInactive, StatusSuspended}

// Domain errors
var (
	ErrEmptyFirstName = errors.New("first name cannot be empty")
	ErrEmptyLastName  = errors.New("last name cannot be empty")
	ErrInvalidEmail   = errors.New("member email must be valid")
	ErrInvalidStatus  = errors.New("status must be 'Active', 'Inactive', or 'Suspended'")
	ErrEmptyTier      = errors.New("membership type cannot be empty")
)

// Member holds state for a gym member.
type Member struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    time.Time // zero when not provided
	JoinDate       time.Time
	MembershipType string
	Status         string
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', names must not be empty
func (m *Member) Validate() error {
	if strings.TrimSpace(m.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(m.LastName) == "" {
		return ErrEmptyLastName
	}
	if len(m.FirstName) > MaxNameLength || len(m.LastName) > MaxNameLength {
		return errors.New("member name cannot exceed 50 characters")
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if len(m.Email) > MaxEmailLength {
		return errors.New("member email cannot exceed 100 characters")
	}
	if strings.TrimSpace(m.MembershipType) == "" {
		return ErrEmptyTier
	}
	if !isValidStatus(m.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// FullName returns the member's display name. Value receiver so templates
// can call it on list elements.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// IsActive returns true if the member is currently active.
// INVARIANT: Member fields are not mutated
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
