package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymadmin/internal/domain/feereminder"
	"gymadmin/internal/domain/member"
)

// MemberStoreForWrite defines the store interface needed by member orchestrators.
type MemberStoreForWrite interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	GetByEmail(ctx context.Context, email string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
	CreateWithInitialReminder(ctx context.Context, m member.Member, r feereminder.Reminder) error
	Delete(ctx context.Context, id string) error
}

// DependentCounter counts rows that reference a member.
type DependentCounter interface {
	CountByMemberID(ctx context.Context, memberID string) (int, error)
}

var (
	ErrEmailTaken       = errors.New("a member with this email already exists")
	ErrMemberHasRecords = errors.New("member has payments, registrations, reminders or attendance records and cannot be deleted")
)

// CreateMemberInput carries input for creating a member.
type CreateMemberInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    time.Time // zero when not provided
	JoinDate       time.Time // zero means today
	MembershipType string
	Status         string
}

// CreateMemberDeps holds dependencies for CreateMember.
type CreateMemberDeps struct {
	MemberStore MemberStoreForWrite
	NewID       func() string
	Now         func() time.Time
}

// ExecuteCreateMember creates a member together with their first fee reminder.
// PRE: Input fields pass domain validation; email not already in use
// POST: Member and a Pending reminder due one billing period after the join
// date are persisted atomically
// INVARIANT: No member exists without an initial fee reminder
func ExecuteCreateMember(ctx context.Context, input CreateMemberInput, deps CreateMemberDeps) (member.Member, error) {
	if _, err := deps.MemberStore.GetByEmail(ctx, input.Email); err == nil {
		return member.Member{}, ErrEmailTaken
	}

	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = deps.Now()
	}
	status := input.Status
	if status == "" {
		status = member.StatusActive
	}

	m := member.Member{
		ID:             deps.NewID(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		DateOfBirth:    input.DateOfBirth,
		JoinDate:       joinDate,
		MembershipType: input.MembershipType,
		Status:         status,
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	reminder := feereminder.Reminder{
		ID:           deps.NewID(),
		MemberID:     m.ID,
		ReminderDate: joinDate.Add(feereminder.BillingPeriod),
		AmountCents:  feereminder.FeeForTier(m.MembershipType),
		Status:       feereminder.StatusPending,
		Notes:        "Initial membership fee",
	}

	if err := deps.MemberStore.CreateWithInitialReminder(ctx, m, reminder); err != nil {
		return member.Member{}, fmt.Errorf("failed to create member: %w", err)
	}

	slog.Info("member_event", "event", "member_created", "member_id", m.ID, "tier", m.MembershipType)
	return m, nil
}

// UpdateMemberInput carries input for updating a member.
type UpdateMemberInput struct {
	MemberID       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    time.Time
	MembershipType string
	Status         string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore MemberStoreForWrite
}

// ExecuteUpdateMember updates an existing member's details.
// PRE: MemberID exists; new email not used by a different member
// POST: Member row reflects the input
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (member.Member, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return member.Member{}, fmt.Errorf("member not found: %w", err)
	}

	if input.Email != m.Email {
		if existing, err := deps.MemberStore.GetByEmail(ctx, input.Email); err == nil && existing.ID != m.ID {
			return member.Member{}, ErrEmailTaken
		}
	}

	m.FirstName = input.FirstName
	m.LastName = input.LastName
	m.Email = input.Email
	m.Phone = input.Phone
	m.DateOfBirth = input.DateOfBirth
	m.MembershipType = input.MembershipType
	m.Status = input.Status
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, fmt.Errorf("failed to save member: %w", err)
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID)
	return m, nil
}

// DeleteMemberInput carries input for deleting a member.
type DeleteMemberInput struct {
	MemberID string
}

// DeleteMemberDeps holds dependencies for DeleteMember.
type DeleteMemberDeps struct {
	MemberStore         MemberStoreForWrite
	PaymentCounter      DependentCounter
	RegistrationCounter DependentCounter
	ReminderCounter     DependentCounter
	AttendanceCounter   DependentCounter
}

// ExecuteDeleteMember removes a member with no dependent records.
// PRE: MemberID exists
// INVARIANT: Members with payments, registrations, reminders or attendance
// records are never deleted
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps DeleteMemberDeps) error {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return fmt.Errorf("member not found: %w", err)
	}

	for _, counter := range []DependentCounter{
		deps.PaymentCounter,
		deps.RegistrationCounter,
		deps.ReminderCounter,
		deps.AttendanceCounter,
	} {
		n, err := counter.CountByMemberID(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("failed to count dependent records: %w", err)
		}
		if n > 0 {
			return ErrMemberHasRecords
		}
	}

	if err := deps.MemberStore.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	slog.Info("member_event", "event", "member_deleted", "member_id", m.ID)
	return nil
}
