package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/adapters/email"
	"gymadmin/internal/domain/feereminder"
)

// ReminderStoreForRollover defines the store interface needed by the fee rollover job.
type ReminderStoreForRollover interface {
	// RolloverPaid archives Paid reminders due on or before asOf and creates
	// their successors, all in one transaction. Returns the successors.
	RolloverPaid(ctx context.Context, asOf time.Time, newID func() string) ([]feereminder.Reminder, error)
	ListDue(ctx context.Context, asOf time.Time) ([]feereminder.Reminder, error)
}

// FeeRolloverDeps holds dependencies for the fee rollover job.
type FeeRolloverDeps struct {
	ReminderStore ReminderStoreForRollover
	MemberStore   MemberLookup
	Sender        email.Sender
	NewID         func() string
	Now           func() time.Time
}

// FeeRolloverResult summarises one run of the rollover job.
type FeeRolloverResult struct {
	RolledOver       int // Paid reminders archived and replaced
	DueNotifications int // emails sent for due Pending reminders
}

// ExecuteFeeRollover advances the billing cycle and notifies members with
// due fees. Paid reminders whose date has passed are archived and replaced
// with a Pending successor one billing period later; running the job twice
// on the same day creates nothing new.
// PRE: Deps are valid and store is connected
// POST: Every Paid reminder due as of now has exactly one Pending successor
func ExecuteFeeRollover(ctx context.Context, deps FeeRolloverDeps) (FeeRolloverResult, error) {
	now := deps.Now()

	successors, err := deps.ReminderStore.RolloverPaid(ctx, now, deps.NewID)
	if err != nil {
		return FeeRolloverResult{}, fmt.Errorf("failed to roll over paid reminders: %w", err)
	}

	result := FeeRolloverResult{RolledOver: len(successors)}

	due, err := deps.ReminderStore.ListDue(ctx, now)
	if err != nil {
		return result, fmt.Errorf("failed to list due reminders: %w", err)
	}

	var requests []email.SendRequest
	for _, r := range due {
		m, err := deps.MemberStore.GetByID(ctx, r.MemberID)
		if err != nil {
			slog.Warn("fee_rollover_event", "event", "member_lookup_failed", "reminder_id", r.ID, "member_id", r.MemberID, "error", err)
			continue
		}
		requests = append(requests, email.SendRequest{
			To:      []string{m.Email},
			Subject: "Your membership fee is due",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your %s membership fee of $%.2f was due on %s. Please arrange payment at the front desk.</p>",
				m.FirstName, m.MembershipType, float64(r.AmountCents)/100, r.ReminderDate.Format("2 January 2006")),
		})
	}

	if len(requests) > 0 {
		sent, err := deps.Sender.SendBatch(ctx, requests)
		if err != nil {
			slog.Error("fee_rollover_event", "event", "notification_send_failed", "error", err)
		}
		result.DueNotifications = len(sent)
	}

	slog.Info("fee_rollover_event", "event", "rollover_complete",
		"rolled_over", result.RolledOver, "due", len(due), "notified", result.DueNotifications)
	return result, nil
}

// StartDailyFeeScheduler starts a background goroutine that runs the fee
// rollover job once per day at the given local hour.
// PRE: 0 <= hour <= 23; stopCh is provided to signal shutdown
// POST: Job runs until stopCh is closed
func StartDailyFeeScheduler(deps FeeRolloverDeps, hour int, stopCh <-chan struct{}) {
	go func() {
		for {
			timer := time.NewTimer(untilNextRun(deps.Now(), hour))
			select {
			case <-timer.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := ExecuteFeeRollover(ctx, deps); err != nil {
					slog.Error("fee_rollover_event", "event", "scheduled_run_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				timer.Stop()
				slog.Info("fee_rollover_event", "event", "scheduler_stopped")
				return
			}
		}
	}()
}

// untilNextRun returns the duration until the next occurrence of hour:00.
func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
