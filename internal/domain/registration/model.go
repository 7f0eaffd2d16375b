package registration

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNoMember = errors.New("registration must be associated with a member")
	ErrNoClass  = errors.New("registration must be associated with a class")
)

// Registration links a member to a fitness class.
// A member holds at most one registration per class; the duplicate check
// is a pre-check query in the register operation.
type Registration struct {
	ID               string
	MemberID         string
	ClassID          string
	RegistrationDate time.Time
}

// Validate checks if the Registration has valid data.
func (r *Registration) Validate() error {
	if r.MemberID == "" {
		return ErrNoMember
	}
	if r.ClassID == "" {
		return ErrNoClass
	}
	return nil
}
