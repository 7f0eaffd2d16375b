package projections

import (
	"context"
	"time"

	"gymadmin/internal/application/listutil"
	"gymadmin/internal/domain/attendance"
	"gymadmin/internal/domain/device"
	"gymadmin/internal/domain/member"
)

// AttendanceListStore defines the attendance store interface for these projections.
type AttendanceListStore interface {
	ListByDate(ctx context.Context, day string) ([]attendance.Record, error)
	List(ctx context.Context, limit, offset int) ([]attendance.Record, error)
	Count(ctx context.Context) (int, error)
}

// AttendanceMemberStore resolves members referenced by attendance records.
type AttendanceMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// AttendanceDeviceStore resolves devices referenced by attendance records.
type AttendanceDeviceStore interface {
	GetByID(ctx context.Context, id string) (device.Device, error)
}

// AttendanceRow is one attendance record joined with member and device names.
type AttendanceRow struct {
	Record     attendance.Record
	MemberName string
	DeviceName string // empty for manual check-ins
}

// GetAttendanceDeps holds dependencies for the attendance projections.
type GetAttendanceDeps struct {
	AttendanceStore AttendanceListStore
	MemberStore     AttendanceMemberStore
	DeviceStore     AttendanceDeviceStore
}

// AttendanceTodayResult carries the live attendance view.
type AttendanceTodayResult struct {
	Rows        []AttendanceRow
	CurrentlyIn int // open records
	TotalToday  int
}

// QueryAttendanceToday returns today's check-ins, most recent first.
func QueryAttendanceToday(ctx context.Context, deps GetAttendanceDeps, now time.Time) (AttendanceTodayResult, error) {
	records, err := deps.AttendanceStore.ListByDate(ctx, now.Format("2006-01-02"))
	if err != nil {
		return AttendanceTodayResult{}, err
	}

	result := AttendanceTodayResult{TotalToday: len(records)}
	for _, r := range records {
		if !r.IsCheckedOut() {
			result.CurrentlyIn++
		}
		result.Rows = append(result.Rows, deps.joinRow(ctx, r))
	}
	return result, nil
}

// AttendanceHistoryResult carries one page of attendance history.
type AttendanceHistoryResult struct {
	Rows     []AttendanceRow
	PageInfo listutil.PageInfo
}

// QueryAttendanceHistory returns a page of all attendance records, most recent first.
func QueryAttendanceHistory(ctx context.Context, deps GetAttendanceDeps, page listutil.PageParams) (AttendanceHistoryResult, error) {
	total, err := deps.AttendanceStore.Count(ctx)
	if err != nil {
		return AttendanceHistoryResult{}, err
	}

	info := listutil.NewPageInfo(page.Page, page.PerPage, total)
	records, err := deps.AttendanceStore.List(ctx, info.PerPage, info.Offset())
	if err != nil {
		return AttendanceHistoryResult{}, err
	}

	result := AttendanceHistoryResult{PageInfo: info}
	for _, r := range records {
		result.Rows = append(result.Rows, deps.joinRow(ctx, r))
	}
	return result, nil
}

// joinRow resolves display names for one record. Missing references degrade
// to placeholder text rather than failing the whole page.
func (deps GetAttendanceDeps) joinRow(ctx context.Context, r attendance.Record) AttendanceRow {
	row := AttendanceRow{Record: r, MemberName: "Unknown member"}
	if m, err := deps.MemberStore.GetByID(ctx, r.MemberID); err == nil {
		row.MemberName = m.FullName()
	}
	if r.DeviceID != "" {
		if d, err := deps.DeviceStore.GetByID(ctx, r.DeviceID); err == nil {
			row.DeviceName = d.Name
		}
	}
	return row
}
