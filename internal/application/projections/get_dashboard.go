package projections

import (
	"context"
	"time"

	memberstore "gymadmin/internal/adapters/storage/member"
	"gymadmin/internal/domain/feereminder"
	"gymadmin/internal/domain/member"
	"gymadmin/internal/domain/payment"
)

// DashboardMemberStore defines the member store interface needed by the dashboard projection.
type DashboardMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Count(ctx context.Context, filter memberstore.ListFilter) (int, error)
}

// DashboardClassStore defines the class store interface needed by the dashboard projection.
type DashboardClassStore interface {
	Count(ctx context.Context) (int, error)
}

// DashboardPaymentStore defines the payment store interface needed by the dashboard projection.
type DashboardPaymentStore interface {
	List(ctx context.Context, limit int) ([]payment.Payment, error)
	SumCompletedCents(ctx context.Context) (int64, error)
}

// DashboardReminderStore defines the reminder store interface needed by the dashboard projection.
type DashboardReminderStore interface {
	CountByStatus(ctx context.Context, status string) (int, error)
}

// DashboardAttendanceStore defines the attendance store interface needed by the dashboard projection.
type DashboardAttendanceStore interface {
	CountByDate(ctx context.Context, day string) (int, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore     DashboardMemberStore
	ClassStore      DashboardClassStore
	PaymentStore    DashboardPaymentStore
	ReminderStore   DashboardReminderStore
	AttendanceStore DashboardAttendanceStore
}

// RecentPayment is one row of the dashboard's recent payment list.
type RecentPayment struct {
	Payment    payment.Payment
	MemberName string
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	TotalMembers     int
	ActiveMembers    int
	TotalClasses     int
	PendingReminders int
	AttendanceToday  int
	RevenueCents     int64
	RecentPayments   []RecentPayment
}

// recentPaymentCount is how many payments the dashboard shows.
const recentPaymentCount = 5

// QueryGetDashboard aggregates the counts and lists shown on the landing page.
// PRE: Deps are valid and stores are connected
// POST: Returns aggregated stats; individual lookup failures degrade to zero values
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	var result DashboardResult
	var err error

	result.TotalMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	result.ActiveMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{Status: member.StatusActive})
	if err != nil {
		return DashboardResult{}, err
	}
	result.TotalClasses, err = deps.ClassStore.Count(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	result.PendingReminders, err = deps.ReminderStore.CountByStatus(ctx, feereminder.StatusPending)
	if err != nil {
		return DashboardResult{}, err
	}
	result.AttendanceToday, err = deps.AttendanceStore.CountByDate(ctx, now.Format("2006-01-02"))
	if err != nil {
		return DashboardResult{}, err
	}
	result.RevenueCents, err = deps.PaymentStore.SumCompletedCents(ctx)
	if err != nil {
		return DashboardResult{}, err
	}

	payments, err := deps.PaymentStore.List(ctx, recentPaymentCount)
	if err != nil {
		return DashboardResult{}, err
	}
	for _, p := range payments {
		name := "Unknown member"
		if m, err := deps.MemberStore.GetByID(ctx, p.MemberID); err == nil {
			name = m.FullName()
		}
		result.RecentPayments = append(result.RecentPayments, RecentPayment{Payment: p, MemberName: name})
	}

	return result, nil
}
