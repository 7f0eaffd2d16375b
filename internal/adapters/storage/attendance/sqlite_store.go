package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const attendanceColumns = "id, member_id, device_id, check_in, check_out, type, notes"

// GetByID retrieves a Record by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+attendanceColumns+" FROM attendance_record WHERE id = ?", id)
	entity, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("attendance record not found: %w", err)
	}
	return entity, err
}

// GetOpenByMemberID returns the member's open record, if one exists.
func (s *SQLiteStore) GetOpenByMemberID(ctx context.Context, memberID string) (domain.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+attendanceColumns+" FROM attendance_record WHERE member_id = ? AND check_out IS NULL ORDER BY check_in DESC LIMIT 1",
		memberID)
	entity, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return domain.Record{}, false, nil
	}
	if err != nil {
		return domain.Record{}, false, err
	}
	return entity, true, nil
}

// Save persists a Record to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deviceID, checkOut, notes interface{}
	if entity.DeviceID != "" {
		deviceID = entity.DeviceID
	}
	if !entity.CheckOut.IsZero() {
		checkOut = entity.CheckOut.Format(time.RFC3339Nano)
	}
	if entity.Notes != "" {
		notes = entity.Notes
	}

	query := `INSERT INTO attendance_record (id, member_id, device_id, check_in, check_out, type, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id,
			device_id=excluded.device_id,
			check_in=excluded.check_in,
			check_out=excluded.check_out,
			type=excluded.type,
			notes=excluded.notes`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		deviceID,
		entity.CheckIn.Format(time.RFC3339Nano),
		checkOut,
		entity.Type,
		notes,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Record from the database.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance_record WHERE id = ?", id)
	return err
}

// ListByDate returns records whose check-in falls on the given day, most recent first.
// day uses the "2006-01-02" layout.
func (s *SQLiteStore) ListByDate(ctx context.Context, day string) ([]domain.Record, error) {
	return s.list(ctx,
		"SELECT "+attendanceColumns+" FROM attendance_record WHERE check_in >= ? AND check_in < ? ORDER BY check_in DESC",
		dayBounds(day))
}

// List returns records most recent first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.list(ctx,
		"SELECT "+attendanceColumns+" FROM attendance_record ORDER BY check_in DESC LIMIT ? OFFSET ?",
		[]any{limit, offset})
}

// Count returns the total number of attendance records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance_record").Scan(&count)
	return count, err
}

// CountByMemberID returns the number of records for a member.
func (s *SQLiteStore) CountByMemberID(ctx context.Context, memberID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance_record WHERE member_id = ?", memberID).Scan(&count)
	return count, err
}

// CountByDate returns the number of check-ins that fall on the given day.
func (s *SQLiteStore) CountByDate(ctx context.Context, day string) (int, error) {
	bounds := dayBounds(day)
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_record WHERE check_in >= ? AND check_in < ?",
		bounds...).Scan(&count)
	return count, err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args []any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		entity, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// dayBounds returns the half-open [day, day+1) range for check_in comparisons.
// Timestamps are stored in RFC 3339 so lexicographic order matches time order.
func dayBounds(day string) []any {
	t, err := time.Parse(storage.DateLayout, day)
	if err != nil {
		// Malformed day matches nothing.
		return []any{day, day}
	}
	return []any{day, t.AddDate(0, 0, 1).Format(storage.DateLayout)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	var entity domain.Record
	var checkIn string
	var deviceID, checkOut, notes sql.NullString
	err := row.Scan(&entity.ID, &entity.MemberID, &deviceID, &checkIn, &checkOut, &entity.Type, &notes)
	if err != nil {
		return domain.Record{}, err
	}

	parsed, err := storage.ParseStoredTime(checkIn)
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to parse check_in: %w", err)
	}
	entity.CheckIn = parsed

	if deviceID.Valid {
		entity.DeviceID = deviceID.String
	}
	if checkOut.Valid {
		parsed, err := storage.ParseStoredTime(checkOut.String)
		if err != nil {
			return domain.Record{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
		entity.CheckOut = parsed
	}
	if notes.Valid {
		entity.Notes = notes.String
	}
	return entity, nil
}
