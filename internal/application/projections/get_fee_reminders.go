package projections

import (
	"context"
	"time"

	"gymadmin/internal/domain/feereminder"
	"gymadmin/internal/domain/fitnessclass"
	"gymadmin/internal/domain/registration"
)

// ClassLookupStore resolves classes referenced by other rows.
type ClassLookupStore interface {
	GetByID(ctx context.Context, id string) (fitnessclass.FitnessClass, error)
}

// ReminderListStore defines the reminder store interface for the reminder list projection.
type ReminderListStore interface {
	List(ctx context.Context) ([]feereminder.Reminder, error)
}

// ReminderRow is one reminder joined with the member's display name.
type ReminderRow struct {
	Reminder   feereminder.Reminder
	MemberName string
	Overdue    bool
}

// FeeReminderListResult carries the fee reminder page data.
type FeeReminderListResult struct {
	Pending []ReminderRow
	Paid    []ReminderRow
}

// QueryGetFeeReminders returns pending and paid reminders with member names.
// Archived reminders stay out of the view; they exist for history only.
func QueryGetFeeReminders(ctx context.Context, store ReminderListStore, members AttendanceMemberStore, now time.Time) (FeeReminderListResult, error) {
	reminders, err := store.List(ctx)
	if err != nil {
		return FeeReminderListResult{}, err
	}

	var result FeeReminderListResult
	for _, r := range reminders {
		row := ReminderRow{Reminder: r, MemberName: "Unknown member", Overdue: r.IsDue(now)}
		if m, err := members.GetByID(ctx, r.MemberID); err == nil {
			row.MemberName = m.FullName()
		}
		switch r.Status {
		case feereminder.StatusPending:
			result.Pending = append(result.Pending, row)
		case feereminder.StatusPaid:
			result.Paid = append(result.Paid, row)
		}
	}
	return result, nil
}

// RegistrationListStore defines the registration store interface for the registration list projection.
type RegistrationListStore interface {
	List(ctx context.Context) ([]registration.Registration, error)
}

// RegistrationRow is one registration joined with member and class names.
type RegistrationRow struct {
	Registration registration.Registration
	MemberName   string
	ClassName    string
}

// QueryGetRegistrations returns all class registrations with display names.
func QueryGetRegistrations(ctx context.Context, store RegistrationListStore, members AttendanceMemberStore, classes ClassLookupStore) ([]RegistrationRow, error) {
	registrations, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	var rows []RegistrationRow
	for _, r := range registrations {
		row := RegistrationRow{Registration: r, MemberName: "Unknown member", ClassName: "Unknown class"}
		if m, err := members.GetByID(ctx, r.MemberID); err == nil {
			row.MemberName = m.FullName()
		}
		if c, err := classes.GetByID(ctx, r.ClassID); err == nil {
			row.ClassName = c.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}
