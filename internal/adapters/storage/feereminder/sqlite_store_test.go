package feereminder

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/feereminder"
)

func openStoreTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	// Satisfy the member foreign key for reminder rows.
	_, err = db.Exec(`INSERT INTO member (id, first_name, last_name, email, join_date, membership_type, status)
		VALUES ('m1', 'Ana', 'Silva', 'ana@test.com', '2026-01-01T00:00:00Z', 'Basic', 'Active')`)
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return NewSQLiteStore(db)
}

func seqTestIDs() func() string {
	n := 0
	return func() string {
		n++
		return []string{"next-001", "next-002", "next-003"}[n-1]
	}
}

// TestRolloverPaid_ArchivesAndCreates verifies a Paid reminder due as of the
// run date is archived and replaced by a Pending reminder one billing period
// later.
func TestRolloverPaid_ArchivesAndCreates(t *testing.T) {
	store := openStoreTestDB(t)
	ctx := context.Background()
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	paid := domain.Reminder{
		ID:           "r1",
		MemberID:     "m1",
		ReminderDate: due,
		AmountCents:  100000,
		Status:       domain.StatusPaid,
	}
	if err := store.Save(ctx, paid); err != nil {
		t.Fatalf("save: %v", err)
	}

	created, err := store.RolloverPaid(ctx, due.Add(24*time.Hour), seqTestIDs())
	if err != nil {
		t.Fatalf("RolloverPaid: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d reminders, want 1", len(created))
	}
	next := created[0]
	if next.Status != domain.StatusPending {
		t.Errorf("successor status = %q, want %q", next.Status, domain.StatusPending)
	}
	if !next.ReminderDate.Equal(due.Add(domain.BillingPeriod)) {
		t.Errorf("successor date = %v, want %v", next.ReminderDate, due.Add(domain.BillingPeriod))
	}
	if next.AmountCents != 100000 {
		t.Errorf("successor amount = %d, want 100000", next.AmountCents)
	}

	original, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if original.Status != domain.StatusArchived {
		t.Errorf("original status = %q, want %q", original.Status, domain.StatusArchived)
	}
}

// TestRolloverPaid_SecondRunNoop verifies running the rollover twice creates
// nothing new: the archived original no longer matches and the successor is
// not yet Paid.
func TestRolloverPaid_SecondRunNoop(t *testing.T) {
	store := openStoreTestDB(t)
	ctx := context.Background()
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := store.Save(ctx, domain.Reminder{
		ID: "r1", MemberID: "m1", ReminderDate: due, AmountCents: 5000, Status: domain.StatusPaid,
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	asOf := due.Add(24 * time.Hour)
	ids := seqTestIDs()
	first, err := store.RolloverPaid(ctx, asOf, ids)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first run created %d, want 1", len(first))
	}

	second, err := store.RolloverPaid(ctx, asOf, ids)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second run created %d reminders, want 0", len(second))
	}
}

// TestListDue_OnlyPendingOnOrBeforeDate verifies due filtering by status and
// date.
func TestListDue_OnlyPendingOnOrBeforeDate(t *testing.T) {
	store := openStoreTestDB(t)
	ctx := context.Background()
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	rows := []domain.Reminder{
		{ID: "r1", MemberID: "m1", ReminderDate: asOf.Add(-48 * time.Hour), AmountCents: 5000, Status: domain.StatusPending},
		{ID: "r2", MemberID: "m1", ReminderDate: asOf, AmountCents: 5000, Status: domain.StatusPending},
		{ID: "r3", MemberID: "m1", ReminderDate: asOf.Add(48 * time.Hour), AmountCents: 5000, Status: domain.StatusPending},
		{ID: "r4", MemberID: "m1", ReminderDate: asOf.Add(-48 * time.Hour), AmountCents: 5000, Status: domain.StatusPaid},
	}
	for _, r := range rows {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	due, err := store.ListDue(ctx, asOf)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("got %d due reminders, want 2", len(due))
	}
	if due[0].ID != "r1" || due[1].ID != "r2" {
		t.Errorf("due IDs = %s, %s; want r1, r2", due[0].ID, due[1].ID)
	}
}
