package fitnessclass

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/fitnessclass"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new fitness class store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const classColumns = "id, name, description, instructor, schedule, duration_minutes, capacity"

// GetByID retrieves a FitnessClass by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.FitnessClass, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+classColumns+" FROM fitness_class WHERE id = ?", id)

	var entity domain.FitnessClass
	var description sql.NullString
	var schedule string
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&description,
		&entity.Instructor,
		&schedule,
		&entity.DurationMinutes,
		&entity.Capacity,
	)
	if err == sql.ErrNoRows {
		return domain.FitnessClass{}, fmt.Errorf("fitness class not found: %w", err)
	}
	if err != nil {
		return domain.FitnessClass{}, err
	}
	return hydrateClass(entity, description, schedule)
}

// Save persists a FitnessClass to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.FitnessClass) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var description interface{}
	if entity.Description != "" {
		description = entity.Description
	}

	query := `INSERT INTO fitness_class (id, name, description, instructor, schedule, duration_minutes, capacity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			instructor=excluded.instructor,
			schedule=excluded.schedule,
			duration_minutes=excluded.duration_minutes,
			capacity=excluded.capacity`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		description,
		entity.Instructor,
		entity.Schedule.Format(time.RFC3339Nano),
		entity.DurationMinutes,
		entity.Capacity,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a FitnessClass from the database.
// PRE: id is non-empty; the caller has verified no registrations exist
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM fitness_class WHERE id = ?", id)
	return err
}

// List retrieves all classes ordered by schedule.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.FitnessClass, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+classColumns+" FROM fitness_class ORDER BY schedule")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.FitnessClass
	for rows.Next() {
		var entity domain.FitnessClass
		var description sql.NullString
		var schedule string
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&description,
			&entity.Instructor,
			&schedule,
			&entity.DurationMinutes,
			&entity.Capacity,
		); err != nil {
			return nil, err
		}
		entity, err := hydrateClass(entity, description, schedule)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of classes.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fitness_class").Scan(&count)
	return count, err
}

func hydrateClass(entity domain.FitnessClass, description sql.NullString, schedule string) (domain.FitnessClass, error) {
	if description.Valid {
		entity.Description = description.String
	}
	parsed, err := storage.ParseStoredTime(schedule)
	if err != nil {
		return domain.FitnessClass{}, fmt.Errorf("failed to parse schedule: %w", err)
	}
	entity.Schedule = parsed
	return entity, nil
}
