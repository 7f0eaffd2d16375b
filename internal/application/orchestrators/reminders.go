package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/feereminder"
)

// ReminderStoreForWrite defines the store interface needed by reminder orchestrators.
type ReminderStoreForWrite interface {
	GetByID(ctx context.Context, id string) (feereminder.Reminder, error)
	Save(ctx context.Context, r feereminder.Reminder) error
	Delete(ctx context.Context, id string) error
}

// AddReminderInput carries input for manually adding a fee reminder.
type AddReminderInput struct {
	MemberID     string
	ReminderDate time.Time // zero means one billing period from now
	AmountCents  int       // zero means the member's tier fee
	Notes        string
}

// AddReminderDeps holds dependencies for AddReminder.
type AddReminderDeps struct {
	ReminderStore ReminderStoreForWrite
	MemberStore   MemberLookup
	NewID         func() string
	Now           func() time.Time
}

// ExecuteAddReminder creates a fee reminder for a member.
// PRE: MemberID exists
// POST: A Pending reminder is persisted; defaults fill date and amount
func ExecuteAddReminder(ctx context.Context, input AddReminderInput, deps AddReminderDeps) (feereminder.Reminder, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return feereminder.Reminder{}, fmt.Errorf("member not found: %w", err)
	}

	date := input.ReminderDate
	if date.IsZero() {
		date = deps.Now().Add(feereminder.BillingPeriod)
	}
	amount := input.AmountCents
	if amount == 0 {
		amount = feereminder.FeeForTier(m.MembershipType)
	}

	r := feereminder.Reminder{
		ID:           deps.NewID(),
		MemberID:     m.ID,
		ReminderDate: date,
		AmountCents:  amount,
		Status:       feereminder.StatusPending,
		Notes:        input.Notes,
	}
	if err := r.Validate(); err != nil {
		return feereminder.Reminder{}, err
	}
	if err := deps.ReminderStore.Save(ctx, r); err != nil {
		return feereminder.Reminder{}, fmt.Errorf("failed to save reminder: %w", err)
	}

	slog.Info("reminder_event", "event", "reminder_added", "reminder_id", r.ID, "member_id", m.ID, "amount_cents", amount)
	return r, nil
}

// MarkReminderPaidInput carries input for marking a reminder paid.
type MarkReminderPaidInput struct {
	ReminderID string
}

// MarkReminderPaidDeps holds dependencies for MarkReminderPaid.
type MarkReminderPaidDeps struct {
	ReminderStore ReminderStoreForWrite
}

// ExecuteMarkReminderPaid transitions a Pending reminder to Paid.
// PRE: ReminderID exists and the reminder is Pending
// POST: Reminder status is Paid
func ExecuteMarkReminderPaid(ctx context.Context, input MarkReminderPaidInput, deps MarkReminderPaidDeps) (feereminder.Reminder, error) {
	r, err := deps.ReminderStore.GetByID(ctx, input.ReminderID)
	if err != nil {
		return feereminder.Reminder{}, fmt.Errorf("reminder not found: %w", err)
	}

	if err := r.MarkPaid(); err != nil {
		return feereminder.Reminder{}, err
	}
	if err := deps.ReminderStore.Save(ctx, r); err != nil {
		return feereminder.Reminder{}, fmt.Errorf("failed to save reminder: %w", err)
	}

	slog.Info("reminder_event", "event", "reminder_paid", "reminder_id", r.ID, "member_id", r.MemberID)
	return r, nil
}

// DeleteReminderInput carries input for deleting a reminder.
type DeleteReminderInput struct {
	ReminderID string
}

// DeleteReminderDeps holds dependencies for DeleteReminder.
type DeleteReminderDeps struct {
	ReminderStore ReminderStoreForWrite
}

// ExecuteDeleteReminder removes a fee reminder.
func ExecuteDeleteReminder(ctx context.Context, input DeleteReminderInput, deps DeleteReminderDeps) error {
	r, err := deps.ReminderStore.GetByID(ctx, input.ReminderID)
	if err != nil {
		return fmt.Errorf("reminder not found: %w", err)
	}

	if err := deps.ReminderStore.Delete(ctx, r.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	slog.Info("reminder_event", "event", "reminder_deleted", "reminder_id", r.ID, "member_id", r.MemberID)
	return nil
}
