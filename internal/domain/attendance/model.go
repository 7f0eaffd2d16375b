package attendance

import (
	"errors"
	"time"
)

// Attendance type constants
const (
	TypeBiometric = "biometric"
	TypeCode      = "code"
	TypeManual    = "manual"
)

// ValidTypes contains all valid attendance type values.
var ValidTypes = []string{TypeBiometric, TypeCode, TypeManual}

// Domain errors
var (
	ErrNoMember          = errors.New("attendance must be associated with a member")
	ErrNoCheckIn         = errors.New("check-in time must be set")
	ErrCheckOutBefore    = errors.New("check-out time cannot be before check-in time")
	ErrInvalidType       = errors.New("attendance type must be 'biometric', 'code', or 'manual'")
	ErrAlreadyCheckedOut = errors.New("member already checked out")
)

// Record holds state for one check-in/out interval.
// A record is open while CheckOut is unset.
type Record struct {
	ID       string
	MemberID string
	DeviceID string // optional: empty for manual and code check-ins without a device
	CheckIn  time.Time
	CheckOut time.Time
	Type     string
	Notes    string
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: CheckOut, if set, must not precede CheckIn
func (r *Record) Validate() error {
	if r.MemberID == "" {
		return ErrNoMember
	}
	if r.CheckIn.IsZero() {
		return ErrNoCheckIn
	}
	if !r.CheckOut.IsZero() && r.CheckOut.Before(r.CheckIn) {
		return ErrCheckOutBefore
	}
	if !isValidType(r.Type) {
		return ErrInvalidType
	}
	return nil
}

// IsCheckedOut returns true if the interval is closed.
// INVARIANT: Record fields are not mutated
func (r *Record) IsCheckedOut() bool {
	return !r.CheckOut.IsZero()
}

// Close sets the check-out time on an open record.
// PRE: Record is open
// POST: CheckOut is set to t
func (r *Record) Close(t time.Time) error {
	if r.IsCheckedOut() {
		return ErrAlreadyCheckedOut
	}
	if t.Before(r.CheckIn) {
		return ErrCheckOutBefore
	}
	r.CheckOut = t
	return nil
}

// Duration returns the length of the attendance interval.
// POST: Returns duration, or time since check-in if still open
func (r *Record) Duration() time.Duration {
	if r.IsCheckedOut() {
		return r.CheckOut.Sub(r.CheckIn)
	}
	return time.Since(r.CheckIn)
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}
