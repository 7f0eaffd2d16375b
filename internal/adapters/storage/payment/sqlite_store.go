package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const paymentColumns = "id, member_id, amount_cents, payment_date, method, status, notes"

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payment WHERE id = ?", id)

	var entity domain.Payment
	var date string
	var method, notes sql.NullString
	err := row.Scan(&entity.ID, &entity.MemberID, &entity.AmountCents, &date, &method, &entity.Status, &notes)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	if err != nil {
		return domain.Payment{}, err
	}
	return hydratePayment(entity, date, method, notes)
}

// Save persists a Payment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var method, notes interface{}
	if entity.Method != "" {
		method = entity.Method
	}
	if entity.Notes != "" {
		notes = entity.Notes
	}

	query := `INSERT INTO payment (id, member_id, amount_cents, payment_date, method, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id,
			amount_cents=excluded.amount_cents,
			payment_date=excluded.payment_date,
			method=excluded.method,
			status=excluded.status,
			notes=excluded.notes`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.AmountCents,
		entity.PaymentDate.Format(time.RFC3339Nano),
		method,
		entity.Status,
		notes,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Payment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM payment WHERE id = ?", id)
	return err
}

// List retrieves payments, most recent first. limit <= 0 means no limit.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payment ORDER BY payment_date DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		var entity domain.Payment
		var date string
		var method, notes sql.NullString
		if err := rows.Scan(&entity.ID, &entity.MemberID, &entity.AmountCents, &date, &method, &entity.Status, &notes); err != nil {
			return nil, err
		}
		entity, err := hydratePayment(entity, date, method, notes)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of payments.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment").Scan(&count)
	return count, err
}

// CountByMemberID returns the number of payments made by a member.
func (s *SQLiteStore) CountByMemberID(ctx context.Context, memberID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment WHERE member_id = ?", memberID).Scan(&count)
	return count, err
}

// SumCompletedCents totals all Completed payments.
func (s *SQLiteStore) SumCompletedCents(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount_cents) FROM payment WHERE status = ?", domain.StatusCompleted).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func hydratePayment(entity domain.Payment, date string, method, notes sql.NullString) (domain.Payment, error) {
	parsed, err := storage.ParseStoredTime(date)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("failed to parse payment_date: %w", err)
	}
	entity.PaymentDate = parsed
	if method.Valid {
		entity.Method = method.String
	}
	if notes.Valid {
		entity.Notes = notes.String
	}
	return entity, nil
}
