package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"gymadmin/internal/adapters/storage"
	attendanceStore "gymadmin/internal/adapters/storage/attendance"
	deviceStore "gymadmin/internal/adapters/storage/device"
	feeReminderStore "gymadmin/internal/adapters/storage/feereminder"
	fitnessClassStore "gymadmin/internal/adapters/storage/fitnessclass"
	memberStore "gymadmin/internal/adapters/storage/member"
	paymentStore "gymadmin/internal/adapters/storage/payment"
	registrationStore "gymadmin/internal/adapters/storage/registration"
	userStore "gymadmin/internal/adapters/storage/user"
	"gymadmin/internal/domain/device"
	"gymadmin/internal/domain/member"
)

// newCheckInTestMux wires the full middleware chain over an in-memory
// database seeded with one active member and one active keypad device.
func newCheckInTestMux(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	members := memberStore.NewSQLiteStore(db)
	devices := deviceStore.NewSQLiteStore(db)

	ctx := context.Background()
	if err := members.Save(ctx, member.Member{
		ID: "m1", FirstName: "Maria", LastName: "Costa",
		Email: "maria@example.com", MembershipType: "Basic", Status: member.StatusActive,
	}); err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	if err := devices.Save(ctx, device.Device{
		ID: "d1", Name: "Front desk keypad", DeviceType: device.TypeKeypad, IsActive: true,
	}); err != nil {
		t.Fatalf("failed to seed device: %v", err)
	}

	return NewMux("static", &Stores{
		UserStore:         userStore.NewSQLiteStore(db),
		MemberStore:       members,
		ClassStore:        fitnessClassStore.NewSQLiteStore(db),
		RegistrationStore: registrationStore.NewSQLiteStore(db),
		PaymentStore:      paymentStore.NewSQLiteStore(db),
		FeeReminderStore:  feeReminderStore.NewSQLiteStore(db),
		DeviceStore:       devices,
		AttendanceStore:   attendanceStore.NewSQLiteStore(db),
	})
}

func postCheckIn(t *testing.T, mux http.Handler, path string, form url.Values) checkInResponse {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("%s status = %d, want 200 (body: %s)", path, rec.Code, rec.Body.String())
	}
	var resp checkInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return resp
}

// TestCheckInCode_FormPost tests that a keypad can post a form-encoded code,
// which is mapped to the member id, without a session or CSRF token.
func TestCheckInCode_FormPost(t *testing.T) {
	mux := newCheckInTestMux(t)

	resp := postCheckIn(t, mux, "/check_in_code", url.Values{
		"code":      {"m1"},
		"device_id": {"d1"},
	})
	if !resp.Success {
		t.Fatalf("check-in failed: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "Maria Costa") {
		t.Errorf("message = %q, want the member's name in the greeting", resp.Message)
	}
}

// TestCheckInBiometric_FormPost tests the member_id form field on the
// biometric endpoint.
func TestCheckInBiometric_FormPost(t *testing.T) {
	mux := newCheckInTestMux(t)

	resp := postCheckIn(t, mux, "/check_in_biometric", url.Values{
		"member_id": {"m1"},
		"device_id": {"d1"},
	})
	if !resp.Success {
		t.Fatalf("check-in failed: %s", resp.Message)
	}
}

// TestCheckIn_JSONBody tests that the JSON contract still holds alongside
// form posts.
func TestCheckIn_JSONBody(t *testing.T) {
	mux := newCheckInTestMux(t)

	req := httptest.NewRequest("POST", "/check_in_code", strings.NewReader(`{"code":"m1","device_id":"d1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp checkInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("check-in failed: %s", resp.Message)
	}
}

// TestCheckIn_DuplicateRefused tests the business-failure shape: HTTP 200
// with success false.
func TestCheckIn_DuplicateRefused(t *testing.T) {
	mux := newCheckInTestMux(t)

	form := url.Values{"member_id": {"m1"}, "device_id": {"d1"}}
	if resp := postCheckIn(t, mux, "/check_in_biometric", form); !resp.Success {
		t.Fatalf("first check-in failed: %s", resp.Message)
	}
	resp := postCheckIn(t, mux, "/check_in_biometric", form)
	if resp.Success {
		t.Fatal("second check-in should be refused while the first is open")
	}
	if !strings.Contains(resp.Message, "already checked in") {
		t.Errorf("message = %q, want an already-checked-in reason", resp.Message)
	}
}
