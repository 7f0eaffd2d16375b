package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/member"
	"gymadmin/internal/domain/payment"
)

// PaymentStoreForWrite defines the store interface needed by payment orchestrators.
type PaymentStoreForWrite interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	Save(ctx context.Context, p payment.Payment) error
	Delete(ctx context.Context, id string) error
}

// MemberLookup resolves a member by ID.
type MemberLookup interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// RecordPaymentInput carries input for recording a payment.
type RecordPaymentInput struct {
	PaymentID   string // empty when recording a new payment
	MemberID    string
	AmountCents int
	PaymentDate time.Time // zero means now
	Method      string
	Status      string
	Notes       string
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	PaymentStore PaymentStoreForWrite
	MemberStore  MemberLookup
	NewID        func() string
	Now          func() time.Time
}

// ExecuteRecordPayment records a new payment or updates an existing one.
// PRE: MemberID exists; amount is positive
// POST: Payment row reflects the input
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (payment.Payment, error) {
	if _, err := deps.MemberStore.GetByID(ctx, input.MemberID); err != nil {
		return payment.Payment{}, fmt.Errorf("member not found: %w", err)
	}

	date := input.PaymentDate
	if date.IsZero() {
		date = deps.Now()
	}
	status := input.Status
	if status == "" {
		status = payment.StatusCompleted
	}

	p := payment.Payment{
		ID:          input.PaymentID,
		MemberID:    input.MemberID,
		AmountCents: input.AmountCents,
		PaymentDate: date,
		Method:      input.Method,
		Status:      status,
		Notes:       input.Notes,
	}

	event := "payment_updated"
	if p.ID == "" {
		p.ID = deps.NewID()
		event = "payment_recorded"
	} else if _, err := deps.PaymentStore.GetByID(ctx, p.ID); err != nil {
		return payment.Payment{}, fmt.Errorf("payment not found: %w", err)
	}

	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, fmt.Errorf("failed to save payment: %w", err)
	}

	slog.Info("payment_event", "event", event, "payment_id", p.ID, "member_id", p.MemberID, "amount_cents", p.AmountCents)
	return p, nil
}

// DeletePaymentInput carries input for deleting a payment.
type DeletePaymentInput struct {
	PaymentID string
}

// DeletePaymentDeps holds dependencies for DeletePayment.
type DeletePaymentDeps struct {
	PaymentStore PaymentStoreForWrite
}

// ExecuteDeletePayment removes a payment record.
func ExecuteDeletePayment(ctx context.Context, input DeletePaymentInput, deps DeletePaymentDeps) error {
	p, err := deps.PaymentStore.GetByID(ctx, input.PaymentID)
	if err != nil {
		return fmt.Errorf("payment not found: %w", err)
	}

	if err := deps.PaymentStore.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	slog.Info("payment_event", "event", "payment_deleted", "payment_id", p.ID, "member_id", p.MemberID)
	return nil
}
