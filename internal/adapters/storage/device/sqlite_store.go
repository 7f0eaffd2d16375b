package device

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymadmin/internal/adapters/storage"
	domain "gymadmin/internal/domain/device"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new device store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const deviceColumns = "id, name, device_type, location, is_active, last_sync"

// GetByID retrieves a Device by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Device, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+deviceColumns+" FROM attendance_device WHERE id = ?", id)

	var entity domain.Device
	var location, lastSync sql.NullString
	err := row.Scan(&entity.ID, &entity.Name, &entity.DeviceType, &location, &entity.IsActive, &lastSync)
	if err == sql.ErrNoRows {
		return domain.Device{}, fmt.Errorf("device not found: %w", err)
	}
	if err != nil {
		return domain.Device{}, err
	}
	return hydrateDevice(entity, location, lastSync)
}

// Save persists a Device to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Device) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var location, lastSync interface{}
	if entity.Location != "" {
		location = entity.Location
	}
	if !entity.LastSync.IsZero() {
		lastSync = entity.LastSync.Format(time.RFC3339Nano)
	}

	query := `INSERT INTO attendance_device (id, name, device_type, location, is_active, last_sync)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			device_type=excluded.device_type,
			location=excluded.location,
			is_active=excluded.is_active,
			last_sync=excluded.last_sync`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.DeviceType,
		location,
		entity.IsActive,
		lastSync,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Device from the database.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance_device WHERE id = ?", id)
	return err
}

// List retrieves all devices ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Device, error) {
	return s.list(ctx, "SELECT "+deviceColumns+" FROM attendance_device ORDER BY name")
}

// ListActive retrieves devices currently accepting check-ins.
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Device, error) {
	return s.list(ctx, "SELECT "+deviceColumns+" FROM attendance_device WHERE is_active = 1 ORDER BY name")
}

func (s *SQLiteStore) list(ctx context.Context, query string) ([]domain.Device, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Device
	for rows.Next() {
		var entity domain.Device
		var location, lastSync sql.NullString
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.DeviceType, &location, &entity.IsActive, &lastSync); err != nil {
			return nil, err
		}
		entity, err := hydrateDevice(entity, location, lastSync)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func hydrateDevice(entity domain.Device, location, lastSync sql.NullString) (domain.Device, error) {
	if location.Valid {
		entity.Location = location.String
	}
	if lastSync.Valid {
		parsed, err := storage.ParseStoredTime(lastSync.String)
		if err != nil {
			return domain.Device{}, fmt.Errorf("failed to parse last_sync: %w", err)
		}
		entity.LastSync = parsed
	}
	return entity, nil
}
