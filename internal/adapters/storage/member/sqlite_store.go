package member

import (
	"context"
	"database/sql"
	"fmt"

	"gymadmin/internal/adapters/storage"
	"gymadmin/internal/domain/feereminder"
	domain "gymadmin/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = "id, first_name, last_name, email, phone, date_of_birth, join_date, membership_type, status"

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM member WHERE id = ?", id)
	return scanMember(row)
}

// GetByEmail retrieves a Member by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM member WHERE email = ?", email)
	return scanMember(row)
}

const memberUpsert = `INSERT INTO member (id, first_name, last_name, email, phone, date_of_birth, join_date, membership_type, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		first_name=excluded.first_name,
		last_name=excluded.last_name,
		email=excluded.email,
		phone=excluded.phone,
		date_of_birth=excluded.date_of_birth,
		join_date=excluded.join_date,
		membership_type=excluded.membership_type,
		status=excluded.status`

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, memberUpsert, memberArgs(entity)...); err != nil {
		return err
	}

	return tx.Commit()
}

// CreateWithInitialReminder inserts a new member and its first fee reminder
// in a single transaction.
// PRE: both entities have been validated and carry IDs
// POST: Both rows are committed, or neither on error
func (s *SQLiteStore) CreateWithInitialReminder(ctx context.Context, entity domain.Member, reminder feereminder.Reminder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, memberUpsert, memberArgs(entity)...); err != nil {
		return err
	}

	var notes interface{}
	if reminder.Notes != "" {
		notes = reminder.Notes
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO fee_reminder (id, member_id, reminder_date, amount_cents, status, notes) VALUES (?, ?, ?, ?, ?, ?)",
		reminder.ID,
		reminder.MemberID,
		reminder.ReminderDate.Format(storage.DateLayout),
		reminder.AmountCents,
		reminder.Status,
		notes,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Member from the database.
// PRE: id is non-empty; the caller has verified no dependent rows exist
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.MembershipType != "" {
		where += " AND membership_type = ?"
		args = append(args, filter.MembershipType)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "last_name", "email": "email",
		"join_date": "join_date", "membership_type": "membership_type", "status": "status",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY last_name ASC, first_name ASC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the total number of members matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM member"+where, args...).Scan(&count)
	return count, err
}

// List retrieves Members matching the filter.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + memberColumns + " FROM member" + where
	query += sortClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMemberRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func memberArgs(entity domain.Member) []any {
	var dob, phone interface{}
	if !entity.DateOfBirth.IsZero() {
		dob = entity.DateOfBirth.Format(storage.DateLayout)
	}
	if entity.Phone != "" {
		phone = entity.Phone
	}
	return []any{
		entity.ID,
		entity.FirstName,
		entity.LastName,
		entity.Email,
		phone,
		dob,
		entity.JoinDate.Format(storage.DateLayout),
		entity.MembershipType,
		entity.Status,
	}
}

func scanMember(row *sql.Row) (domain.Member, error) {
	var entity domain.Member
	var phone, dob sql.NullString
	var joinDate string
	err := row.Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Email,
		&phone,
		&dob,
		&joinDate,
		&entity.MembershipType,
		&entity.Status,
	)
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	if err != nil {
		return domain.Member{}, err
	}
	return hydrateMember(entity, phone, dob, joinDate)
}

func scanMemberRows(rows *sql.Rows) (domain.Member, error) {
	var entity domain.Member
	var phone, dob sql.NullString
	var joinDate string
	err := rows.Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Email,
		&phone,
		&dob,
		&joinDate,
		&entity.MembershipType,
		&entity.Status,
	)
	if err != nil {
		return domain.Member{}, err
	}
	return hydrateMember(entity, phone, dob, joinDate)
}

func hydrateMember(entity domain.Member, phone, dob sql.NullString, joinDate string) (domain.Member, error) {
	if phone.Valid {
		entity.Phone = phone.String
	}
	if dob.Valid && dob.String != "" {
		parsed, err := storage.ParseStoredDate(dob.String)
		if err != nil {
			return domain.Member{}, fmt.Errorf("failed to parse date_of_birth: %w", err)
		}
		entity.DateOfBirth = parsed
	}
	parsed, err := storage.ParseStoredDate(joinDate)
	if err != nil {
		return domain.Member{}, fmt.Errorf("failed to parse join_date: %w", err)
	}
	entity.JoinDate = parsed
	return entity, nil
}
