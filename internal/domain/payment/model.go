package payment

import (
	"errors"
	"time"
)

// Payment status constants
const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
	StatusFailed    = "Failed"
)

// Payment method constants
const (
	MethodCreditCard   = "Credit Card"
	MethodCash         = "Cash"
	MethodBankTransfer = "Bank Transfer"
)

// ValidStatuses contains all valid payment status values.
var ValidStatuses = []string{StatusCompleted, StatusPending, StatusFailed}

// ValidMethods contains the payment methods offered on payment forms.
var ValidMethods = []string{MethodCreditCard, MethodCash, MethodBankTransfer}

// Domain errors
var (
	ErrNoMember      = errors.New("payment must be associated with a member")
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrInvalidStatus = errors.New("status must be 'Completed', 'Pending', or 'Failed'")
)

// Payment holds state for a recorded member payment.
type Payment struct {
	ID          string
	MemberID    string
	AmountCents int
	PaymentDate time.Time
	Method      string
	Status      string
	Notes       string
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: AmountCents is a positive monetary value
func (p *Payment) Validate() error {
	if p.MemberID == "" {
		return ErrNoMember
	}
	if p.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if !isValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsCompleted returns true if the payment settled.
// INVARIANT: Payment fields are not mutated
func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
