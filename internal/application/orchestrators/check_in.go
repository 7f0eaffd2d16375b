package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/attendance"
	"gymadmin/internal/domain/device"
)

// AttendanceStoreForCheckIn defines the store interface needed by check-in orchestrators.
type AttendanceStoreForCheckIn interface {
	GetByID(ctx context.Context, id string) (attendance.Record, error)
	GetOpenByMemberID(ctx context.Context, memberID string) (attendance.Record, bool, error)
	Save(ctx context.Context, r attendance.Record) error
}

// DeviceStoreForCheckIn defines the store interface needed for device check-ins.
type DeviceStoreForCheckIn interface {
	GetByID(ctx context.Context, id string) (device.Device, error)
	Save(ctx context.Context, d device.Device) error
}

var (
	ErrMemberInactive   = errors.New("member is not active")
	ErrDeviceInactive   = errors.New("device is not active")
	ErrAlreadyCheckedIn = errors.New("member is already checked in")
	ErrDeviceRequired   = errors.New("a device is required for this check-in type")
)

// CheckInInput carries input for checking a member in.
type CheckInInput struct {
	MemberID string
	DeviceID string // required for biometric and code check-ins
	Type     string // attendance.TypeBiometric, TypeCode or TypeManual
	Notes    string
}

// CheckInDeps holds dependencies for CheckIn.
type CheckInDeps struct {
	AttendanceStore AttendanceStoreForCheckIn
	MemberStore     MemberLookup
	DeviceStore     DeviceStoreForCheckIn
	NewID           func() string
	Now             func() time.Time
}

// ExecuteCheckIn opens an attendance record for a member.
// PRE: Member exists and is Active; device (when required) exists and is active
// POST: An open record is persisted; the device's last sync is updated
// INVARIANT: A member has at most one open attendance record
func ExecuteCheckIn(ctx context.Context, input CheckInInput, deps CheckInDeps) (attendance.Record, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("member not found: %w", err)
	}
	if !m.IsActive() {
		return attendance.Record{}, ErrMemberInactive
	}

	var dev device.Device
	if input.Type == attendance.TypeBiometric || input.Type == attendance.TypeCode {
		if input.DeviceID == "" {
			return attendance.Record{}, ErrDeviceRequired
		}
		dev, err = deps.DeviceStore.GetByID(ctx, input.DeviceID)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("device not found: %w", err)
		}
		if !dev.IsActive {
			return attendance.Record{}, ErrDeviceInactive
		}
	}

	if _, open, err := deps.AttendanceStore.GetOpenByMemberID(ctx, m.ID); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to look up open record: %w", err)
	} else if open {
		return attendance.Record{}, ErrAlreadyCheckedIn
	}

	now := deps.Now()
	r := attendance.Record{
		ID:       deps.NewID(),
		MemberID: m.ID,
		DeviceID: input.DeviceID,
		CheckIn:  now,
		Type:     input.Type,
		Notes:    input.Notes,
	}
	if err := r.Validate(); err != nil {
		return attendance.Record{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, r); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	if dev.ID != "" {
		dev.RecordSync(now)
		if err := deps.DeviceStore.Save(ctx, dev); err != nil {
			slog.Warn("check_in_event", "event", "device_sync_failed", "device_id", dev.ID, "error", err)
		}
	}

	slog.Info("check_in_event", "event", "member_checked_in", "member_id", m.ID, "type", input.Type, "device_id", input.DeviceID)
	return r, nil
}

// CheckOutInput carries input for checking a member out.
type CheckOutInput struct {
	RecordID string
}

// CheckOutDeps holds dependencies for CheckOut.
type CheckOutDeps struct {
	AttendanceStore AttendanceStoreForCheckIn
	Now             func() time.Time
}

// ExecuteCheckOut closes an open attendance record.
// PRE: RecordID exists
// POST: Record's check-out time is set; a second check-out leaves the record
// unchanged and returns attendance.ErrAlreadyCheckedOut alongside it
func ExecuteCheckOut(ctx context.Context, input CheckOutInput, deps CheckOutDeps) (attendance.Record, error) {
	r, err := deps.AttendanceStore.GetByID(ctx, input.RecordID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("attendance record not found: %w", err)
	}

	if err := r.Close(deps.Now()); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			slog.Info("check_in_event", "event", "check_out_repeated", "record_id", r.ID, "member_id", r.MemberID)
			return r, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Record{}, err
	}

	if err := deps.AttendanceStore.Save(ctx, r); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	slog.Info("check_in_event", "event", "member_checked_out", "record_id", r.ID, "member_id", r.MemberID, "duration", r.Duration().Round(time.Second))
	return r, nil
}
