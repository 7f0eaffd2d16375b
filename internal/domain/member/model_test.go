package member_test

import (
	"testing"
	"time"

	"gymadmin/internal/domain/member"
)

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	valid := member.Member{
		ID:             "123",
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john@example.com",
		JoinDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MembershipType: "Premium",
		Status:         member.StatusActive,
	}

	tests := []struct {
		name    string
		mutate  func(m *member.Member)
		wantErr error
	}{
		{name: "valid member", mutate: func(m *member.Member) {}, wantErr: nil},
		{name: "suspended status is valid", mutate: func(m *member.Member) { m.Status = member.StatusSuspended }, wantErr: nil},
		{name: "empty first name", mutate: func(m *member.Member) { m.FirstName = "" }, wantErr: member.ErrEmptyFirstName},
		{name: "empty last name", mutate: func(m *member.Member) { m.LastName = "  " }, wantErr: member.ErrEmptyLastName},
		{name: "invalid email", mutate: func(m *member.Member) { m.Email = "not-an-email" }, wantErr: member.ErrInvalidEmail},
		{name: "empty tier", mutate: func(m *member.Member) { m.MembershipType = "" }, wantErr: member.ErrEmptyTier},
		{name: "unknown status", mutate: func(m *member.Member) { m.Status = "Deleted" }, wantErr: member.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			if err := m.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestFullName tests the display name composition.
func TestFullName(t *testing.T) {
	m := member.Member{FirstName: "Jane", LastName: "Smith"}
	if got := m.FullName(); got != "Jane Smith" {
		t.Errorf("FullName() = %q, want %q", got, "Jane Smith")
	}
}

// TestIsActive tests the status predicate.
func TestIsActive(t *testing.T) {
	m := member.Member{Status: member.StatusActive}
	if !m.IsActive() {
		t.Error("IsActive() = false for Active member")
	}
	m.Status = member.StatusSuspended
	if m.IsActive() {
		t.Error("IsActive() = true for Suspended member")
	}
}
