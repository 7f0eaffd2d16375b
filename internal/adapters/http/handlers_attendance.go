package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"gymadmin/internal/application/listutil"
	"gymadmin/internal/application/orchestrators"
	"gymadmin/internal/application/projections"
	"gymadmin/internal/domain/attendance"
	"gymadmin/internal/domain/device"
)

func attendanceDeps() projections.GetAttendanceDeps {
	return projections.GetAttendanceDeps{
		AttendanceStore: stores.AttendanceStore,
		MemberStore:     stores.MemberStore,
		DeviceStore:     stores.DeviceStore,
	}
}

// handleAttendance handles GET /attendance (today's check-ins).
func handleAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryAttendanceToday(r.Context(), attendanceDeps(), timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "attendance.html", map[string]any{
		"Rows":        result.Rows,
		"CurrentlyIn": result.CurrentlyIn,
		"TotalToday":  result.TotalToday,
	})
}

// handleAttendanceHistory handles GET /attendance_history.
func handleAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	page := listutil.ParsePageParams(r.URL.Query())

	result, err := projections.QueryAttendanceHistory(r.Context(), attendanceDeps(), page)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "attendance_history.html", map[string]any{
		"Rows":           result.Rows,
		"PageInfo":       result.PageInfo,
		"PerPageOptions": listutil.PerPageOptions,
	})
}

// deviceCheckIn runs a device-originated check-in and answers in JSON.
// These endpoints carry no session; devices authenticate by being registered
// and active. Biometric readers post a member_id; keypads post a code, which
// doubles as the member id.
func deviceCheckIn(w http.ResponseWriter, r *http.Request, checkInType string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		MemberID string `json:"member_id"`
		DeviceID string `json:"device_id"`
		Code     string `json:"code"`
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := strictDecode(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, checkInResponse{Success: false, Message: "invalid request body"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, checkInResponse{Success: false, Message: "invalid request body"})
			return
		}
		req.MemberID = r.PostFormValue("member_id")
		req.DeviceID = r.PostFormValue("device_id")
		req.Code = r.PostFormValue("code")
	}

	memberID := req.MemberID
	if memberID == "" {
		memberID = req.Code
	}

	record, err := orchestrators.ExecuteCheckIn(r.Context(), orchestrators.CheckInInput{
		MemberID: memberID,
		DeviceID: req.DeviceID,
		Type:     checkInType,
	}, orchestrators.CheckInDeps{
		AttendanceStore: stores.AttendanceStore,
		MemberStore:     stores.MemberStore,
		DeviceStore:     stores.DeviceStore,
		NewID:           generateID,
		Now:             timeNow,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, checkInResponse{Success: false, Message: err.Error()})
		return
	}

	greeting := "Checked in at " + record.CheckIn.Format("15:04")
	if m, err := stores.MemberStore.GetByID(r.Context(), record.MemberID); err == nil {
		greeting = "Welcome, " + m.FullName() + "! " + greeting
	}
	writeJSON(w, http.StatusOK, checkInResponse{Success: true, Message: greeting})
}

// handleCheckInBiometric handles POST /check_in_biometric.
func handleCheckInBiometric(w http.ResponseWriter, r *http.Request) {
	deviceCheckIn(w, r, attendance.TypeBiometric)
}

// handleCheckInCode handles POST /check_in_code.
func handleCheckInCode(w http.ResponseWriter, r *http.Request) {
	deviceCheckIn(w, r, attendance.TypeCode)
}

// handleCheckOut handles POST /check_out/{id}.
func handleCheckOut(w http.ResponseWriter, r *http.Request) {
	_, err := orchestrators.ExecuteCheckOut(r.Context(), orchestrators.CheckOutInput{
		RecordID: r.PathValue("id"),
	}, orchestrators.CheckOutDeps{
		AttendanceStore: stores.AttendanceStore,
		Now:             timeNow,
	})
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		redirectWithFlash(w, r, "/attendance", "already checked out")
		return
	case errors.Is(err, sql.ErrNoRows):
		http.NotFound(w, r)
		return
	case err != nil:
		internalError(w, err)
		return
	}

	http.Redirect(w, r, "/attendance", http.StatusSeeOther)
}

// handleManualCheckIn handles GET (form) and POST (create) for /manual_check_in.
func handleManualCheckIn(w http.ResponseWriter, r *http.Request) {
	renderForm := func(errMsg string) {
		members, err := stores.MemberStore.List(r.Context(), memberListAll())
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "manual_check_in.html", map[string]any{
			"Members": members,
			"Error":   errMsg,
		})
	}

	if r.Method == "GET" {
		renderForm("")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteCheckIn(r.Context(), orchestrators.CheckInInput{
		MemberID: r.FormValue("member_id"),
		Type:     attendance.TypeManual,
		Notes:    r.FormValue("notes"),
	}, orchestrators.CheckInDeps{
		AttendanceStore: stores.AttendanceStore,
		MemberStore:     stores.MemberStore,
		DeviceStore:     stores.DeviceStore,
		NewID:           generateID,
		Now:             timeNow,
	})
	if err != nil {
		renderForm(err.Error())
		return
	}

	http.Redirect(w, r, "/attendance", http.StatusSeeOther)
}

// handleAttendanceDevices handles GET /attendance_devices.
func handleAttendanceDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := stores.DeviceStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "attendance_devices.html", map[string]any{
		"Devices": devices,
	})
}

// handleAddDevice handles GET (form) and POST (create) for /add_device.
func handleAddDevice(w http.ResponseWriter, r *http.Request) {
	renderForm := func(values map[string]string, errMsg string) {
		renderTemplate(w, r, "device_form.html", map[string]any{
			"Values":      values,
			"Error":       errMsg,
			"DeviceTypes": device.ValidTypes,
		})
	}

	if r.Method == "GET" {
		renderForm(map[string]string{"is_active": "1"}, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := map[string]string{
		"name":        r.FormValue("name"),
		"device_type": r.FormValue("device_type"),
		"location":    r.FormValue("location"),
	}

	_, err := orchestrators.ExecuteSaveDevice(r.Context(), orchestrators.SaveDeviceInput{
		Name:       values["name"],
		DeviceType: values["device_type"],
		Location:   values["location"],
		IsActive:   r.FormValue("is_active") != "",
	}, orchestrators.SaveDeviceDeps{
		DeviceStore: stores.DeviceStore,
		NewID:       generateID,
	})
	if err != nil {
		renderForm(values, err.Error())
		return
	}

	http.Redirect(w, r, "/attendance_devices", http.StatusSeeOther)
}
