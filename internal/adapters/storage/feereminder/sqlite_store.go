package feereminder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/feereminder"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new fee reminder store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const reminderColumns = "id, member_id, reminder_date, amount_cents, status, notes"

// GetByID retrieves a Reminder by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Reminder, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reminderColumns+" FROM fee_reminder WHERE id = ?", id)

	var entity domain.Reminder
	var date string
	var notes sql.NullString
	err := row.Scan(&entity.ID, &entity.MemberID, &date, &entity.AmountCents, &entity.Status, &notes)
	if err == sql.ErrNoRows {
		return domain.Reminder{}, fmt.Errorf("fee reminder not found: %w", err)
	}
	if err != nil {
		return domain.Reminder{}, err
	}
	return hydrateReminder(entity, date, notes)
}

// Save persists a Reminder to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Reminder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var notes interface{}
	if entity.Notes != "" {
		notes = entity.Notes
	}

	query := `INSERT INTO fee_reminder (id, member_id, reminder_date, amount_cents, status, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id,
			reminder_date=excluded.reminder_date,
			amount_cents=excluded.amount_cents,
			status=excluded.status,
			notes=excluded.notes`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.ReminderDate.Format(storage.DateLayout),
		entity.AmountCents,
		entity.Status,
		notes,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Reminder from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM fee_reminder WHERE id = ?", id)
	return err
}

// List retrieves all reminders ordered by reminder date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+reminderColumns+" FROM fee_reminder ORDER BY reminder_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// ListDue returns Pending reminders dated on or before asOf.
func (s *SQLiteStore) ListDue(ctx context.Context, asOf time.Time) ([]domain.Reminder, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+reminderColumns+" FROM fee_reminder WHERE status = ? AND reminder_date <= ? ORDER BY reminder_date",
		domain.StatusPending,
		asOf.Format(storage.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// RolloverPaid creates the next period's Pending reminder for every Paid
// reminder dated on or before asOf and archives the originals.
// The whole batch runs in one transaction: an interrupted run leaves no
// partial writes, and archiving stops an already-rolled reminder from
// matching again on the next run.
// PRE: newID yields unique reminder IDs
// POST: One new Pending reminder per rolled Paid reminder; originals Archived
func (s *SQLiteStore) RolloverPaid(ctx context.Context, asOf time.Time, newID func() string) ([]domain.Reminder, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		"SELECT "+reminderColumns+" FROM fee_reminder WHERE status = ? AND reminder_date <= ? ORDER BY reminder_date",
		domain.StatusPaid,
		asOf.Format(storage.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	paid, err := collectReminders(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	var created []domain.Reminder
	for _, r := range paid {
		next := r.Next()
		next.ID = newID()

		_, err := tx.ExecContext(ctx,
			"INSERT INTO fee_reminder (id, member_id, reminder_date, amount_cents, status, notes) VALUES (?, ?, ?, ?, ?, NULL)",
			next.ID,
			next.MemberID,
			next.ReminderDate.Format(storage.DateLayout),
			next.AmountCents,
			next.Status,
		)
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE fee_reminder SET status = ? WHERE id = ?",
			domain.StatusArchived,
			r.ID,
		)
		if err != nil {
			return nil, err
		}

		created = append(created, next)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// CountByMemberID returns the number of reminders held by a member.
func (s *SQLiteStore) CountByMemberID(ctx context.Context, memberID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fee_reminder WHERE member_id = ?", memberID).Scan(&count)
	return count, err
}

// CountByStatus returns the number of reminders with the given status.
func (s *SQLiteStore) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fee_reminder WHERE status = ?", status).Scan(&count)
	return count, err
}

func collectReminders(rows *sql.Rows) ([]domain.Reminder, error) {
	var results []domain.Reminder
	for rows.Next() {
		var entity domain.Reminder
		var date string
		var notes sql.NullString
		if err := rows.Scan(&entity.ID, &entity.MemberID, &date, &entity.AmountCents, &entity.Status, &notes); err != nil {
			return nil, err
		}
		entity, err := hydrateReminder(entity, date, notes)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func hydrateReminder(entity domain.Reminder, date string, notes sql.NullString) (domain.Reminder, error) {
	parsed, err := storage.ParseStoredDate(date)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("failed to parse reminder_date: %w", err)
	}
	entity.ReminderDate = parsed
	if notes.Valid {
		entity.Notes = notes.String
	}
	return entity, nil
}
