package feereminder

import (
	"errors"
	"time"
)

// Reminder status constants
const (
	StatusPending  = "Pending"
	StatusPaid     = "Paid"
	StatusArchived = "Archived"
)

// ValidStatuses contains all valid reminder status values.
var ValidStatuses = []string{StatusPending, StatusPaid, StatusArchived}

// BillingPeriod is the gap between consecutive fee reminders.
const BillingPeriod = 30 * 24 * time.Hour

// Domain errors
var (
	ErrNoMember      = errors.New("fee reminder must be associated with a member")
	ErrNoDate        = errors.New("reminder date must be set")
	ErrInvalidAmount = errors.New("reminder amount must be positive")
	ErrInvalidStatus = errors.New("status must be 'Pending', 'Paid', or 'Archived'")
	ErrNotPending    = errors.New("only a pending reminder can be marked paid")
	ErrNotPaid       = errors.New("only a paid reminder can be archived")
)

// Reminder holds state for a scheduled fee obligation.
// A reminder is Pending until marked Paid; a Paid reminder that has been
// rolled over into the next period's reminder becomes Archived so the
// rollover job does not pick it up again.
type Reminder struct {
	ID           string
	MemberID     string
	ReminderDate time.Time // date precision
	AmountCents  int
	Status       string
	Notes        string
}

// Validate checks if the Reminder has valid data.
// PRE: Reminder struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Reminder) Validate() error {
	if r.MemberID == "" {
		return ErrNoMember
	}
	if r.ReminderDate.IsZero() {
		return ErrNoDate
	}
	if r.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if !isValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsDue returns true if the reminder is pending and its date has arrived.
// INVARIANT: Reminder fields are not mutated
func (r *Reminder) IsDue(asOf time.Time) bool {
	return r.Status == StatusPending && !r.ReminderDate.After(asOf)
}

// MarkPaid transitions the reminder from Pending to Paid.
// PRE: Reminder is Pending
// POST: Status is Paid
func (r *Reminder) MarkPaid() error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusPaid
	return nil
}

// Archive transitions a rolled-over reminder from Paid to Archived.
// PRE: Reminder is Paid
// POST: Status is Archived
func (r *Reminder) Archive() error {
	if r.Status != StatusPaid {
		return ErrNotPaid
	}
	r.Status = StatusArchived
	return nil
}

// Next returns the successor reminder for the following billing period:
// same member and amount, dated one period after this one, Pending.
// The successor's ID is left empty for the caller to assign.
// INVARIANT: Reminder fields are not mutated
func (r *Reminder) Next() Reminder {
	return Reminder{
		MemberID:     r.MemberID,
		ReminderDate: r.ReminderDate.Add(BillingPeriod),
		AmountCents:  r.AmountCents,
		Status:       StatusPending,
	}
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
