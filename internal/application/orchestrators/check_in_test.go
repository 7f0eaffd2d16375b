package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymadmin/internal/domain/attendance"
	"gymadmin/internal/domain/device"
	"gymadmin/internal/domain/member"
)

// mockAttendanceStore implements AttendanceStoreForCheckIn for testing.
type mockAttendanceStore struct {
	records map[string]attendance.Record
}

func newMockAttendanceStore() *mockAttendanceStore {
	return &mockAttendanceStore{records: make(map[string]attendance.Record)}
}

func (m *mockAttendanceStore) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return attendance.Record{}, errors.New("not found")
	}
	return r, nil
}

func (m *mockAttendanceStore) GetOpenByMemberID(_ context.Context, memberID string) (attendance.Record, bool, error) {
	for _, r := range m.records {
		if r.MemberID == memberID && !r.IsCheckedOut() {
			return r, true, nil
		}
	}
	return attendance.Record{}, false, nil
}

func (m *mockAttendanceStore) Save(_ context.Context, r attendance.Record) error {
	m.records[r.ID] = r
	return nil
}

// mockDeviceStore implements DeviceStoreForCheckIn for testing.
type mockDeviceStore struct {
	devices map[string]device.Device
}

func newMockDeviceStore() *mockDeviceStore {
	return &mockDeviceStore{devices: make(map[string]device.Device)}
}

func (m *mockDeviceStore) GetByID(_ context.Context, id string) (device.Device, error) {
	d, ok := m.devices[id]
	if !ok {
		return device.Device{}, errors.New("not found")
	}
	return d, nil
}

func (m *mockDeviceStore) Save(_ context.Context, d device.Device) error {
	m.devices[d.ID] = d
	return nil
}

func checkInFixtures() (*mockAttendanceStore, *mockMemberStore, *mockDeviceStore) {
	attStore := newMockAttendanceStore()
	memStore := newMockMemberStore()
	memStore.members["m1"] = member.Member{ID: "m1", FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", Status: member.StatusActive}
	devStore := newMockDeviceStore()
	devStore.devices["d1"] = device.Device{ID: "d1", Name: "Front Door", DeviceType: device.TypeBiometric, IsActive: true}
	return attStore, memStore, devStore
}

// TestExecuteCheckIn_Biometric tests a successful biometric check-in.
func TestExecuteCheckIn_Biometric(t *testing.T) {
	attStore, memStore, devStore := checkInFixtures()

	r, err := ExecuteCheckIn(context.Background(), CheckInInput{
		MemberID: "m1",
		DeviceID: "d1",
		Type:     attendance.TypeBiometric,
	}, CheckInDeps{
		AttendanceStore: attStore,
		MemberStore:     memStore,
		DeviceStore:     devStore,
		NewID:           fixedID,
		Now:             fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.CheckIn.Equal(fixedTime) {
		t.Errorf("check-in time = %v, want %v", r.CheckIn, fixedTime)
	}
	if r.IsCheckedOut() {
		t.Error("new record should be open")
	}
	if got := devStore.devices["d1"].LastSync; !got.Equal(fixedTime) {
		t.Errorf("device last sync = %v, want %v", got, fixedTime)
	}
}

// TestExecuteCheckIn_InactiveMember tests that suspended members are refused.
func TestExecuteCheckIn_InactiveMember(t *testing.T) {
	attStore, memStore, devStore := checkInFixtures()
	m := memStore.members["m1"]
	m.Status = member.StatusSuspended
	memStore.members["m1"] = m

	_, err := ExecuteCheckIn(context.Background(), CheckInInput{
		MemberID: "m1", DeviceID: "d1", Type: attendance.TypeBiometric,
	}, CheckInDeps{AttendanceStore: attStore, MemberStore: memStore, DeviceStore: devStore, NewID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrMemberInactive) {
		t.Errorf("expected ErrMemberInactive, got %v", err)
	}
}

// TestExecuteCheckIn_InactiveDevice tests that disabled devices refuse check-ins.
func TestExecuteCheckIn_InactiveDevice(t *testing.T) {
	attStore, memStore, devStore := checkInFixtures()
	d := devStore.devices["d1"]
	d.IsActive = false
	devStore.devices["d1"] = d

	_, err := ExecuteCheckIn(context.Background(), CheckInInput{
		MemberID: "m1", DeviceID: "d1", Type: attendance.TypeBiometric,
	}, CheckInDeps{AttendanceStore: attStore, MemberStore: memStore, DeviceStore: devStore, NewID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrDeviceInactive) {
		t.Errorf("expected ErrDeviceInactive, got %v", err)
	}
}

// TestExecuteCheckIn_AlreadyCheckedIn tests the single-open-record invariant.
func TestExecuteCheckIn_AlreadyCheckedIn(t *testing.T) {
	attStore, memStore, devStore := checkInFixtures()
	attStore.records["r1"] = attendance.Record{ID: "r1", MemberID: "m1", CheckIn: fixedTime.Add(-time.Hour), Type: attendance.TypeManual}

	_, err := ExecuteCheckIn(context.Background(), CheckInInput{
		MemberID: "m1", DeviceID: "d1", Type: attendance.TypeBiometric,
	}, CheckInDeps{AttendanceStore: attStore, MemberStore: memStore, DeviceStore: devStore, NewID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

// TestExecuteCheckIn_ManualWithoutDevice tests that manual check-ins need no device.
func TestExecuteCheckIn_ManualWithoutDevice(t *testing.T) {
	attStore, memStore, devStore := checkInFixtures()

	r, err := ExecuteCheckIn(context.Background(), CheckInInput{
		MemberID: "m1",
		Type:     attendance.TypeManual,
		Notes:    "front desk",
	}, CheckInDeps{AttendanceStore: attStore, MemberStore: memStore, DeviceStore: devStore, NewID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DeviceID != "" {
		t.Errorf("expected empty device id, got %s", r.DeviceID)
	}
}

// TestExecuteCheckIn_CodeWithoutDevice tests that code check-ins require a device.
func TestExecuteCheckIn_CodeWithoutDevice(t *testing.T) {
	attStore, memStore, devStore := checkInFixtures()

	_, err := ExecuteCheckIn(context.Background(), CheckInInput{
		MemberID: "m1", Type: attendance.TypeCode,
	}, CheckInDeps{AttendanceStore: attStore, MemberStore: memStore, DeviceStore: devStore, NewID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrDeviceRequired) {
		t.Errorf("expected ErrDeviceRequired, got %v", err)
	}
}

// TestExecuteCheckOut_ClosesRecord tests a successful check-out.
func TestExecuteCheckOut_ClosesRecord(t *testing.T) {
	attStore := newMockAttendanceStore()
	attStore.records["r1"] = attendance.Record{ID: "r1", MemberID: "m1", CheckIn: fixedTime.Add(-time.Hour), Type: attendance.TypeManual}

	r, err := ExecuteCheckOut(context.Background(), CheckOutInput{RecordID: "r1"}, CheckOutDeps{
		AttendanceStore: attStore,
		Now:             fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.CheckOut.Equal(fixedTime) {
		t.Errorf("check-out time = %v, want %v", r.CheckOut, fixedTime)
	}
	stored := attStore.records["r1"]
	if !stored.IsCheckedOut() {
		t.Error("record should be closed in the store")
	}
}

// TestExecuteCheckOut_Repeated tests that a second check-out changes nothing
// and reports the already-closed state to the caller.
func TestExecuteCheckOut_Repeated(t *testing.T) {
	attStore := newMockAttendanceStore()
	closedAt := fixedTime.Add(-30 * time.Minute)
	attStore.records["r1"] = attendance.Record{ID: "r1", MemberID: "m1", CheckIn: fixedTime.Add(-time.Hour), CheckOut: closedAt, Type: attendance.TypeManual}

	r, err := ExecuteCheckOut(context.Background(), CheckOutInput{RecordID: "r1"}, CheckOutDeps{
		AttendanceStore: attStore,
		Now:             fixedNow,
	})
	if !errors.Is(err, attendance.ErrAlreadyCheckedOut) {
		t.Fatalf("expected ErrAlreadyCheckedOut, got %v", err)
	}
	if !r.CheckOut.Equal(closedAt) {
		t.Errorf("check-out time changed: %v, want %v", r.CheckOut, closedAt)
	}
	if !attStore.records["r1"].CheckOut.Equal(closedAt) {
		t.Errorf("stored record changed: %v, want %v", attStore.records["r1"].CheckOut, closedAt)
	}
}
