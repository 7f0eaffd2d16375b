package user_test

import (
	"testing"
	"time"

	"gymadmin/internal/domain/user"
)

// TestUserValidation tests validation of User.
func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    user.User
		wantErr bool
	}{
		{
			name:    "valid admin",
			user:    user.User{ID: "1", Username: "admin", Role: user.RoleAdmin},
			wantErr: false,
		},
		{
			name:    "valid staff",
			user:    user.User{ID: "2", Username: "frontdesk", Role: user.RoleStaff},
			wantErr: false,
		},
		{
			name:    "empty username",
			user:    user.User{ID: "3", Username: "  ", Role: user.RoleStaff},
			wantErr: true,
		},
		{
			name:    "unknown role",
			user:    user.User{ID: "4", Username: "bob", Role: "superuser"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSetAndCheckPassword tests the bcrypt round trip.
func TestSetAndCheckPassword(t *testing.T) {
	u := user.User{ID: "1", Username: "admin", Role: user.RoleAdmin}

	if err := u.SetPassword("short"); err != user.ErrPasswordTooShort {
		t.Errorf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := u.SetPassword(""); err != user.ErrEmptyPassword {
		t.Errorf("SetPassword(empty) error = %v, want ErrEmptyPassword", err)
	}

	if err := u.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "admin123" {
		t.Fatal("password hash not set or stored in plaintext")
	}
	if err := u.CheckPassword("admin123"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := u.CheckPassword("wrong password"); err != user.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestLockout tests the failed-login lockout behavior.
func TestLockout(t *testing.T) {
	u := user.User{ID: "1", Username: "admin", Role: user.RoleAdmin}

	for i := 0; i < 4; i++ {
		u.RecordFailedLogin()
	}
	if u.IsLocked() {
		t.Fatal("account locked before 5 failures")
	}

	u.RecordFailedLogin()
	if !u.IsLocked() {
		t.Fatal("account not locked after 5 failures")
	}
	if u.LockedUntil.Before(time.Now()) {
		t.Error("LockedUntil should be in the future")
	}

	u.ResetFailedLogins()
	if u.IsLocked() || u.FailedLogins != 0 {
		t.Error("reset did not clear the lockout")
	}
}
