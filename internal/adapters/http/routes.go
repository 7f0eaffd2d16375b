package web

import (
	"net/http"

	"gymadmin/internal/adapters/http/middleware"
	"gymadmin/internal/domain/user"
)

// registerRoutes wires every application route onto the mux.
// Device check-in endpoints are deliberately outside the auth wall; everything
// else requires a session, and user management requires the admin role.
func registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	adminOnly := middleware.RequireRole(user.RoleAdmin)

	// Authentication
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Dashboard
	mux.Handle("GET /{$}", authed(handleDashboard))

	// Members
	mux.Handle("GET /members", authed(handleMembers))
	mux.Handle("/add_member", authed(handleAddMember))
	mux.Handle("/edit_member/{id}", authed(handleEditMember))
	mux.Handle("POST /delete_member/{id}", authed(handleDeleteMember))

	// Classes and registrations
	mux.Handle("GET /classes", authed(handleClasses))
	mux.Handle("/add_class", authed(handleAddClass))
	mux.Handle("/edit_class/{id}", authed(handleEditClass))
	mux.Handle("POST /delete_class/{id}", authed(handleDeleteClass))
	mux.Handle("GET /class_registrations", authed(handleClassRegistrations))
	mux.Handle("POST /register_member_class", authed(handleRegisterMemberClass))
	mux.Handle("POST /delete_registration/{id}", authed(handleDeleteRegistration))

	// Payments
	mux.Handle("GET /payments", authed(handlePayments))
	mux.Handle("/add_payment", authed(handleAddPayment))
	mux.Handle("/edit_payment/{id}", authed(handleEditPayment))
	mux.Handle("POST /delete_payment/{id}", authed(handleDeletePayment))

	// Fee reminders
	mux.Handle("GET /fee_reminders", authed(handleFeeReminders))
	mux.Handle("POST /mark_paid/{id}", authed(handleMarkPaid))
	mux.Handle("/add_fee_reminder/{member_id}", authed(handleAddFeeReminder))
	mux.Handle("POST /delete_reminder/{id}", authed(handleDeleteReminder))

	// Attendance
	mux.Handle("GET /attendance", authed(handleAttendance))
	mux.Handle("GET /attendance_history", authed(handleAttendanceHistory))
	mux.Handle("POST /check_out/{id}", authed(handleCheckOut))
	mux.Handle("/manual_check_in", authed(handleManualCheckIn))
	mux.Handle("GET /attendance_devices", authed(handleAttendanceDevices))
	mux.Handle("/add_device", authed(handleAddDevice))

	// Device endpoints: JSON, no session
	mux.HandleFunc("POST /check_in_biometric", handleCheckInBiometric)
	mux.HandleFunc("POST /check_in_code", handleCheckInCode)

	// User management (admin only)
	mux.Handle("GET /users", adminOnly(http.HandlerFunc(handleUsers)))
	mux.Handle("POST /add_user", adminOnly(http.HandlerFunc(handleAddUser)))
	mux.Handle("POST /delete_user/{id}", adminOnly(http.HandlerFunc(handleDeleteUser)))
}
