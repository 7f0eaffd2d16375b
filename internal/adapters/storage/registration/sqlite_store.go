package registration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/registration"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new registration store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const registrationColumns = "id, member_id, class_id, registration_date"

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+registrationColumns+" FROM class_registration WHERE id = ?", id)
	return scanRegistration(row)
}

// GetByMemberAndClass retrieves the registration linking a member to a class.
// PRE: memberID and classID are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByMemberAndClass(ctx context.Context, memberID, classID string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM class_registration WHERE member_id = ? AND class_id = ?",
		memberID, classID)
	return scanRegistration(row)
}

// Save persists a Registration to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Registration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO class_registration (id, member_id, class_id, registration_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id,
			class_id=excluded.class_id,
			registration_date=excluded.registration_date`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.ClassID,
		entity.RegistrationDate.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Registration from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class_registration WHERE id = ?", id)
	return err
}

// List retrieves all registrations, most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+registrationColumns+" FROM class_registration ORDER BY registration_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Registration
	for rows.Next() {
		var entity domain.Registration
		var date string
		if err := rows.Scan(&entity.ID, &entity.MemberID, &entity.ClassID, &date); err != nil {
			return nil, err
		}
		parsed, err := storage.ParseStoredTime(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse registration_date: %w", err)
		}
		entity.RegistrationDate = parsed
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByMemberID returns the number of registrations held by a member.
func (s *SQLiteStore) CountByMemberID(ctx context.Context, memberID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM class_registration WHERE member_id = ?", memberID).Scan(&count)
	return count, err
}

// CountByClassID returns the number of registrations for a class.
func (s *SQLiteStore) CountByClassID(ctx context.Context, classID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM class_registration WHERE class_id = ?", classID).Scan(&count)
	return count, err
}

func scanRegistration(row *sql.Row) (domain.Registration, error) {
	var entity domain.Registration
	var date string
	err := row.Scan(&entity.ID, &entity.MemberID, &entity.ClassID, &date)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	if err != nil {
		return domain.Registration{}, err
	}
	parsed, err := storage.ParseStoredTime(date)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("failed to parse registration_date: %w", err)
	}
	entity.RegistrationDate = parsed
	return entity, nil
}
